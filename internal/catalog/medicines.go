package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

var medicineColumns = []string{
	"name", "price", "manufacturer", "type", "pack_size",
	"composition", "description", "side_effects", "is_discontinued",
}

// ReadMedicines parses a medicine catalog export. Only the name column is
// required; side effects are separated by "|".
func ReadMedicines(r io.Reader) ([]models.Medicine, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, errors.New("medicine csv has no name column")
	}

	var out []models.Medicine
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		field := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		m := models.Medicine{
			Name:         field("name"),
			Manufacturer: field("manufacturer"),
			Type:         field("type"),
			PackSize:     field("pack_size"),
			Composition:  field("composition"),
			Description:  field("description"),
			SideEffects:  splitList(field("side_effects")),
		}
		if m.Name == "" {
			continue
		}

		if p := field("price"); p != "" {
			price, err := strconv.ParseFloat(strings.TrimPrefix(p, "₹"), 64)
			if err != nil || price < 0 {
				return nil, fmt.Errorf("line %d: invalid price %q", line, p)
			}
			m.Price = price
		}
		if d := field("is_discontinued"); d != "" {
			disc, err := strconv.ParseBool(strings.ToLower(d))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid is_discontinued %q", line, d)
			}
			m.IsDiscontinued = disc
		}

		out = append(out, m)
	}
	return out, nil
}

func splitList(s string) pq.StringArray {
	if s == "" {
		return pq.StringArray{}
	}
	parts := strings.Split(s, "|")
	out := make(pq.StringArray, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
