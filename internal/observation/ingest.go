package observation

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the YYYYMMDD date format of the observation feed
const dateLayout = "20060102"

// Source provides the raw per-station observation series
type Source interface {
	// Observations fetches and decompresses the daily observation series of a station
	Observations(ctx context.Context, stationID string) (string, error)
}

// Service ingests per-station observation series
type Service struct {
	source Source
}

// NewService creates a new observation ingest service
func NewService(source Source) *Service {
	return &Service{
		source: source,
	}
}

// Ingest fetches and decodes the daily observation series of a station.
// Rows are `[ID, DATE, ELEMENT, VALUE_TENTHS, M-FLAG, Q-FLAG, S-FLAG, OBS-TIME]`;
// only TMAX/TMIN rows are kept. Raw values are tenths of a degree Celsius and are
// normalized to whole degrees. Rows with unparsable dates or values are dropped.
func (service *Service) Ingest(ctx context.Context, stationID string) ([]Observation, error) {
	text, err := service.source.Observations(ctx, stationID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1

	var observations []Observation
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are dropped, they never abort the batch
			continue
		}
		if len(row) < 4 {
			continue
		}

		element := Element(strings.TrimSpace(row[2]))
		if element != ElementTMax && element != ElementTMin {
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		tenths, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			continue
		}

		observations = append(observations, Observation{
			StationID: strings.TrimSpace(row[0]),
			Date:      date,
			Element:   element,
			Celsius:   tenths / 10,
		})
	}

	return observations, nil
}
