// Package importer reads bar schedules and BOQ items from the first sheet of
// an xlsx workbook. Row 1 is a header and is skipped; columns are positional.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"Armature/internal/calc/bbs"
	"Armature/internal/calc/boq"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"

	"github.com/xuri/excelize/v2"
)

// BBS sheet columns.
//
//	A member_id  B element_type  C bar_type  D diameter_mm  E num_bars
//	F clear_length_m  G spacing_mm  H hook_type  I bend_angles (e.g. "90;90")
//	J cover_mm  K wastage_percent  L lap_length_m  M stock_length_m
//	N unit_rate_per_kg  O shape
const bbsMinColumns = 6

// BOQ sheet columns.
//
//	A description  B category  C unit  D quantity  E length  F breadth
//	G height  H area  I volume  J count  K per_unit_rate  L wastage_percent
//	M cement_bags  N sand_m3  O aggregate_m3  P steel_kg  Q bricks
//	R formwork_m2  S labour_quantity  T apply_overheads
//
// A row with a per_unit_rate gets overheads and profit unless column T says
// no (no, false, n or 0).
const boqMinColumns = 2

// RowError reports a row that could not be read. Row is 1-based as shown in a spreadsheet.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type BBSImport struct {
	Items   []bbs.Item `json:"items"`
	Skipped []RowError `json:"skipped,omitempty"`
}

type BOQImport struct {
	Items   []boq.Item `json:"items"`
	Skipped []RowError `json:"skipped,omitempty"`
}

func readRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadBBS reads schedule rows. Rows that fail to parse are skipped and reported.
func ReadBBS(r io.Reader) (BBSImport, error) {
	rows, err := readRows(r)
	if err != nil {
		return BBSImport{}, err
	}
	var out BBSImport
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		item, err := parseBBSRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

// ReadBOQ reads quantity rows. Rows that fail to parse are skipped and reported.
func ReadBOQ(r io.Reader) (BOQImport, error) {
	rows, err := readRows(r)
	if err != nil {
		return BOQImport{}, err
	}
	var out BOQImport
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		item, err := parseBOQRow(row)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// optFloat parses column i when present; ok is false for an empty cell.
func optFloat(row []string, i int, name string) (v float64, ok bool, err error) {
	s := cell(row, i)
	if s == "" {
		return 0, false, nil
	}
	v, err = toFloat(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, true, nil
}

func parseBBSRow(row []string) (bbs.Item, error) {
	if len(row) < bbsMinColumns {
		return bbs.Item{}, fmt.Errorf("expected at least %d columns, got %d", bbsMinColumns, len(row))
	}
	item := bbs.Item{
		MemberID:        cell(row, 0),
		ElementType:     cell(row, 1),
		BarType:         bbs.Role(cell(row, 2)),
		HookType:        rebar.HookType(cell(row, 7)),
		ShapePreference: bbs.Shape(cell(row, 14)),
	}
	if item.MemberID == "" {
		return bbs.Item{}, fmt.Errorf("member_id is empty")
	}

	d, ok, err := optFloat(row, 3, "diameter_mm")
	if err != nil {
		return bbs.Item{}, err
	}
	if !ok {
		return bbs.Item{}, fmt.Errorf("diameter_mm is empty")
	}
	item.DiameterMM = d

	n, ok, err := optFloat(row, 4, "num_bars")
	if err != nil {
		return bbs.Item{}, err
	}
	if !ok {
		return bbs.Item{}, fmt.Errorf("num_bars is empty")
	}
	if n != math.Trunc(n) || n > math.MaxInt32 {
		return bbs.Item{}, fmt.Errorf("num_bars: %q is not a whole number", cell(row, 4))
	}
	item.NumBars = int(n)

	clearM, ok, err := optFloat(row, 5, "clear_length_m")
	if err != nil {
		return bbs.Item{}, err
	}
	if !ok {
		return bbs.Item{}, fmt.Errorf("clear_length_m is empty")
	}
	item.ClearLength = units.M(clearM)

	if v, ok, err := optFloat(row, 6, "spacing_mm"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.SpacingMM = v
	}
	if s := cell(row, 8); s != "" {
		for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' || r == ' ' }) {
			a, err := toFloat(part)
			if err != nil {
				return bbs.Item{}, fmt.Errorf("bend_angles: %q is not a number", part)
			}
			item.BendAngles = append(item.BendAngles, a)
		}
	}
	if v, ok, err := optFloat(row, 9, "cover_mm"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.CoverMM = &v
	}
	if v, ok, err := optFloat(row, 10, "wastage_percent"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.WastagePercent = &v
	}
	if v, ok, err := optFloat(row, 11, "lap_length_m"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.LapLengthM = v
	}
	if v, ok, err := optFloat(row, 12, "stock_length_m"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.StockLengthM = v
	}
	if v, ok, err := optFloat(row, 13, "unit_rate_per_kg"); err != nil {
		return bbs.Item{}, err
	} else if ok {
		item.UnitRatePerKg = &v
	}
	return item, nil
}

func parseBOQRow(row []string) (boq.Item, error) {
	if len(row) < boqMinColumns {
		return boq.Item{}, fmt.Errorf("expected at least %d columns, got %d", boqMinColumns, len(row))
	}
	item := boq.Item{
		Description: cell(row, 0),
		Category:    cell(row, 1),
		Unit:        cell(row, 2),
	}
	if item.Description == "" {
		return boq.Item{}, fmt.Errorf("description is empty")
	}

	var mats boq.Materials
	hasMats := false
	fields := []struct {
		col  int
		name string
		set  func(float64)
	}{
		{3, "quantity", func(v float64) { item.Quantity = &v }},
		{4, "length", func(v float64) { item.Length = v }},
		{5, "breadth", func(v float64) { item.Breadth = v }},
		{6, "height", func(v float64) { item.Height = v }},
		{7, "area", func(v float64) { item.Area = v }},
		{8, "volume", func(v float64) { item.Volume = v }},
		{9, "count", func(v float64) { item.Count = v }},
		{10, "per_unit_rate", func(v float64) { item.PerUnitRate = &v; item.ApplyOverheads = true }},
		{11, "wastage_percent", func(v float64) { item.WastagePercent = v }},
		{12, "cement_bags", func(v float64) { mats.CementBags = v; hasMats = true }},
		{13, "sand_m3", func(v float64) { mats.SandM3 = v; hasMats = true }},
		{14, "aggregate_m3", func(v float64) { mats.AggregateM3 = v; hasMats = true }},
		{15, "steel_kg", func(v float64) { mats.SteelKg = v; hasMats = true }},
		{16, "bricks", func(v float64) { mats.Bricks = v; hasMats = true }},
		{17, "formwork_m2", func(v float64) { mats.FormworkM2 = v; hasMats = true }},
		{18, "labour_quantity", func(v float64) { item.LabourQuantity = &v }},
	}
	for _, f := range fields {
		v, ok, err := optFloat(row, f.col, f.name)
		if err != nil {
			return boq.Item{}, err
		}
		if ok {
			f.set(v)
		}
	}
	if hasMats {
		item.Materials = &mats
	}
	if s := cell(row, 19); s != "" && item.PerUnitRate != nil {
		apply, err := parseFlag(s)
		if err != nil {
			return boq.Item{}, fmt.Errorf("apply_overheads: %w", err)
		}
		item.ApplyOverheads = apply
	}
	return item, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not yes or no", s)
}

// toFloat accepts a plain finite number only; "12mm" or "6.5 m" are rejected.
func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}
