package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skybi/climate-server/internal/api/schema"
	"github.com/skybi/climate-server/internal/station"
)

// Default search parameters of the map front end
const (
	defaultLatitude  = 48.060711110885094
	defaultLongitude = 8.533784762385885
	defaultRadiusKm  = 50.0
	defaultLimit     = 5
)

var errYearWindowInvalid = &schema.Error{
	Type:    "validation.query.yearWindow.invalid",
	Message: "The query parameter 'firstyear' must not exceed 'lastyear'.",
	Details: map[string]interface{}{},
}

// EndpointSearchStations handles the
// 'GET /v1/stations?lat={float?}&lon={float?}&radius={float?:50}&limit={number?:5}&firstyear={number}&lastyear={number}' endpoint
func (service *Service) EndpointSearchStations(writer http.ResponseWriter, request *http.Request) {
	results, ok := service.search(writer, request)
	if !ok {
		return
	}
	service.writer.WriteJSON(writer, results)
}

// EndpointStreamStations handles the same parameters as EndpointSearchStations but
// delivers the result set as server-sent events: one 'data: {json}' event per
// station followed by a final 'data: finished' event.
// The result set is fully computed before the first event is written, so an
// abandoned stream never leaves partial state behind.
func (service *Service) EndpointStreamStations(writer http.ResponseWriter, request *http.Request) {
	results, ok := service.search(writer, request)
	if !ok {
		return
	}

	writer.Header().Set("Content-Type", "text/event-stream")
	writer.Header().Set("Cache-Control", "no-cache")
	writer.Header().Set("Connection", "keep-alive")
	writer.Header().Set("X-Accel-Buffering", "no")
	writer.WriteHeader(http.StatusOK)

	flusher, _ := writer.(http.Flusher)
	for _, result := range results {
		select {
		case <-request.Context().Done():
			return
		default:
		}

		event, err := json.Marshal(result)
		if err != nil {
			continue
		}
		fmt.Fprintf(writer, "data: %s\n\n", event)
		if flusher != nil {
			flusher.Flush()
		}
	}

	fmt.Fprint(writer, "data: finished\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

// search validates the query parameters, performs the radius search and enriches
// the results with display names. It reports whether a response is still pending;
// on a false return the error response has already been written.
func (service *Service) search(writer http.ResponseWriter, request *http.Request) ([]station.SearchResult, bool) {
	var validationErrs []*schema.Error

	lat, validationErr := schema.QueryFloat(request, "lat", false, defaultLatitude, -90, 90)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	lon, validationErr := schema.QueryFloat(request, "lon", false, defaultLongitude, -180, 180)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	radius, validationErr := schema.QueryFloat(request, "radius", false, defaultRadiusKm, 0, 25000)
	if validationErr != nil {
		validationErrs = append(validationErrs, validationErr)
	}

	limit, validationErr := schema.QueryNumber(request, "limit", false, defaultLimit, 1, 100)
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

	if len(validationErrs) == 0 && firstYear > lastYear {
		validationErrs = append(validationErrs, errYearWindowInvalid)
	}

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return nil, false
	}

	results, err := service.Index.Search(request.Context(), station.Query{
		Latitude:  lat,
		Longitude: lon,
		RadiusKm:  radius,
		Limit:     int(limit),
		FirstYear: int(firstYear),
		LastYear:  int(lastYear),
	})
	if err != nil {
		service.writeFeedError(writer, err)
		return nil, false
	}

	for i := range results {
		name, err := service.Directory.Name(request.Context(), results[i].StationID)
		if err != nil {
			service.writeFeedError(writer, err)
			return nil, false
		}
		results[i].City = name
	}

	return results, true
}
