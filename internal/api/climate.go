package api

import (
	"net/http"

	"github.com/skybi/climate-server/internal/api/schema"
	"github.com/skybi/climate-server/internal/climate"
)

// EndpointGetClimate handles the
// 'GET /v1/climate?station_id={string}&firstyear={number}&lastyear={number}&station_lat={float?}' endpoint.
// If station_lat is omitted, the hemisphere is resolved from the station index.
func (service *Service) EndpointGetClimate(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error

	stationID, validationErr := schema.QueryString(request, "station_id", true, "")
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	firstYear, validationErr := schema.QueryNumber(request, "firstyear", true, 0, 0, 9999)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	lastYear, validationErr := schema.QueryNumber(request, "lastyear", true, 0, 0, 9999)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	stationLat, validationErr := schema.QueryFloat(request, "station_lat", false, 91, -90, 90)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	if len(validationErrs) == 0 && firstYear > lastYear {
		validationErrs = append(validationErrs, errYearWindowInvalid)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// The default of 91 is out of range and marks an omitted parameter
	if stationLat > 90 {
		record, err := service.Index.GetByID(request.Context(), stationID)
		if err != nil {
			service.writeFeedError(writer, err)
			return
		}
		if record == nil {
			service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
			return
		}
		stationLat = record.Latitude
	}

	summary, err := service.Climate.GetOrCompute(request.Context(), climate.CacheKey{
		StationID:     stationID,
		FirstYear:     int(firstYear),
		LastYear:      int(lastYear),
		HemisphereLat: stationLat,
	})
	if err != nil {
		service.writeFeedError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, summary)
}
