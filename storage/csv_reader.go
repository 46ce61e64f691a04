package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"offer-enrichment/models"
)

const utf8BOM = "\ufeff"

// ReadRawOffers loads the collector's table. Columns are looked up by
// header name, so extra columns and any column order are accepted. Short
// rows are padded with empty fields.
func ReadRawOffers(path string) ([]*models.RawOffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %q has no header row", path)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		index[strings.TrimSpace(h)] = i
	}
	cols := make([]int, len(RawHeader))
	for i, name := range RawHeader {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("csv: %q is missing column %q", path, name)
		}
		cols[i] = idx
	}

	var offers []*models.RawOffer
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}
		field := func(i int) string {
			if cols[i] < len(rec) {
				return rec[cols[i]]
			}
			return ""
		}
		offers = append(offers, &models.RawOffer{
			Titre:      field(0),
			Entreprise: field(1),
			Ville:      field(2),
			Contrat:    field(3),
			Date:       field(4),
		})
	}
	return offers, nil
}
