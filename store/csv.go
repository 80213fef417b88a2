package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"agenda-backend/models"
)

// Column names match the historical catalog files, so existing data keeps
// loading unchanged.
const (
	colName     = "Nome"
	colPrice    = "Valor"
	colDuration = "Duração (min)"

	logColClient = "Cliente"
	logColSvc    = "Serviço"
	logColStart  = "Data e Hora Início"
	logColPrice  = "Valor"

	logTimeLayout = "2006-01-02 15:04"
)

// encodeCatalog renders the catalog in its stable column set. The duration
// column is present exactly when the catalog carries explicit durations, so
// a decode/encode cycle is byte-for-byte stable.
func encodeCatalog(catalog models.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{colName, colPrice}
	if catalog.HasDurations {
		header = append(header, colDuration)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range catalog.Records {
		// Prices serialize with monetary scale, matching the files the
		// original catalogs were authored with.
		row := []string{rec.Name, rec.Price.StringFixed(2)}
		if catalog.HasDurations {
			row = append(row, strconv.Itoa(rec.DurationMin))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func decodeCatalog(data []byte) (models.Catalog, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return models.Catalog{}, err
	}
	if len(rows) == 0 {
		return models.Catalog{}, fmt.Errorf("catalog file has no header row")
	}

	catalog := models.Catalog{}
	header := rows[0]
	switch {
	case len(header) == 2 && header[0] == colName && header[1] == colPrice:
		catalog.HasDurations = false
	case len(header) == 3 && header[0] == colName && header[1] == colPrice && header[2] == colDuration:
		catalog.HasDurations = true
	default:
		return models.Catalog{}, fmt.Errorf("unexpected catalog columns: %v", header)
	}

	for i, row := range rows[1:] {
		want := 2
		if catalog.HasDurations {
			want = 3
		}
		if len(row) != want {
			return models.Catalog{}, fmt.Errorf("catalog row %d: expected %d fields, got %d", i+1, want, len(row))
		}

		price, err := decimal.NewFromString(row[1])
		if err != nil {
			return models.Catalog{}, fmt.Errorf("catalog row %d: bad price %q: %w", i+1, row[1], err)
		}

		rec := models.ServiceRecord{Name: row[0], Price: price}
		if catalog.HasDurations {
			rec.DurationMin, err = strconv.Atoi(row[2])
			if err != nil {
				return models.Catalog{}, fmt.Errorf("catalog row %d: bad duration %q: %w", i+1, row[2], err)
			}
		}
		catalog.Records = append(catalog.Records, rec)
	}

	return catalog, nil
}

// encodeLog appends entry to the serialized log, writing the header first
// when the log is empty.
func encodeLog(existing []byte, entry models.AppointmentLogEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(existing) == 0 {
		if err := w.Write([]string{logColClient, logColSvc, logColStart, logColPrice}); err != nil {
			return nil, err
		}
	} else {
		buf.Write(existing)
		if existing[len(existing)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	row := []string{
		entry.ClientName,
		entry.Summary,
		entry.Start.Format(logTimeLayout),
		entry.TotalPrice.StringFixed(2),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
