// Package bbs builds a bar bending schedule from reinforcement line items:
// cutting lengths with hook, bend and development allowances, lap splices past
// the stock length, shape codes, weights and compliance notes.
package bbs

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"Armature/internal/calc/element"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/rebar"
	"Armature/internal/calc/units"
	"Armature/internal/core"
)

type Role string

const (
	RoleMain         Role = "Main"
	RoleSecondary    Role = "Secondary"
	RoleStirrups     Role = "Stirrups/Ties"
	RoleDistribution Role = "Distribution"
	RoleExtra        Role = "Extra"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMain, RoleSecondary, RoleStirrups, RoleDistribution, RoleExtra:
		return true
	}
	return false
}

// Item is one row of the schedule. Pointer fields are optional; nil falls back
// to the run options and then to the registry.
type Item struct {
	ElementType        string         `json:"element_type" yaml:"element_type"`
	MemberID           string         `json:"member_id" yaml:"member_id"`
	BarType            Role           `json:"bar_type" yaml:"bar_type"`
	DiameterMM         float64        `json:"diameter_mm" yaml:"diameter_mm"`
	NumBars            int            `json:"num_bars" yaml:"num_bars"`
	SpacingMM          float64        `json:"spacing_mm,omitempty" yaml:"spacing_mm,omitempty"`
	ClearLength        units.Length   `json:"clear_length" yaml:"clear_length"`
	HookType           rebar.HookType `json:"hook_type,omitempty" yaml:"hook_type,omitempty"`
	HookLengthMM       float64        `json:"hook_length_mm,omitempty" yaml:"hook_length_mm,omitempty"` // custom hooks only
	BendAngles         []float64      `json:"bend_angles,omitempty" yaml:"bend_angles,omitempty"`
	DevelopmentLengthM *float64       `json:"development_length_m,omitempty" yaml:"development_length_m,omitempty"`
	CoverMM            *float64       `json:"cover_mm,omitempty" yaml:"cover_mm,omitempty"`
	WastagePercent     *float64       `json:"wastage_percent,omitempty" yaml:"wastage_percent,omitempty"`
	LapLengthM         float64        `json:"lap_length_m,omitempty" yaml:"lap_length_m,omitempty"`
	StockLengthM       float64        `json:"stock_length_m,omitempty" yaml:"stock_length_m,omitempty"`
	UnitRatePerKg      *float64       `json:"unit_rate_per_kg,omitempty" yaml:"unit_rate_per_kg,omitempty"`
	ShapePreference    Shape          `json:"shape_preference,omitempty" yaml:"shape_preference,omitempty"`
}

// Options are run-wide defaults; zero values fall back to the registry.
type Options struct {
	DesignCode     string   `json:"design_code,omitempty" yaml:"design_code,omitempty"`
	StockLengthM   float64  `json:"stock_length_m,omitempty" yaml:"stock_length_m,omitempty"`
	CoverMM        float64  `json:"cover_mm,omitempty" yaml:"cover_mm,omitempty"`
	WastagePercent *float64 `json:"wastage_percent,omitempty" yaml:"wastage_percent,omitempty"`
}

type Input struct {
	Items   []Item  `json:"items" yaml:"items"`
	Options Options `json:"options" yaml:"options"`
}

type ResultItem struct {
	BarMark            string   `json:"bar_mark"`
	Shape              Shape    `json:"shape"`
	ElementType        string   `json:"element_type"`
	MemberID           string   `json:"member_id"`
	BarType            Role     `json:"bar_type"`
	DiameterMM         float64  `json:"diameter_mm"`
	NumBars            int      `json:"num_bars"`
	SpacingMM          float64  `json:"spacing_mm,omitempty"`
	CoverMM            float64  `json:"cover_mm"`
	DevelopmentLengthM float64  `json:"development_length_m"`
	CuttingLengthM     float64  `json:"cutting_length_m"`
	TotalLengthM       float64  `json:"total_length_m"`
	UnitWeightKgPerM   float64  `json:"unit_weight_kg_per_m"`
	WastagePercent     float64  `json:"wastage_percent"`
	TotalWeightKg      float64  `json:"total_weight_kg"`
	Hook               string   `json:"hook,omitempty"`
	Splices            int      `json:"splices,omitempty"`
	LapPerSpliceM      float64  `json:"lap_per_splice_m,omitempty"`
	LapLengthM         float64  `json:"lap_length_m,omitempty"` // total lap added over all splices
	Lap                string   `json:"lap,omitempty"`
	Cost               *float64 `json:"cost,omitempty"`
	Notes              []string `json:"notes,omitempty"`
}

type DiameterTotal struct {
	DiameterMM    float64 `json:"diameter_mm"`
	NumBars       int     `json:"num_bars"`
	TotalLengthM  float64 `json:"total_length_m"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

type Summary struct {
	TotalWeightKg     float64         `json:"total_weight_kg"`
	TotalWeightTonnes float64         `json:"total_weight_t"`
	TotalBars         int             `json:"total_bars"`
	TotalLengthM      float64         `json:"total_length_m"`
	TotalCost         *float64        `json:"total_cost,omitempty"`
	ByDiameter        []DiameterTotal `json:"by_diameter"`
}

type Result struct {
	Input           Input        `json:"input"`
	DesignCode      string       `json:"design_code"`
	Items           []ResultItem `json:"items"`
	Summary         Summary      `json:"summary"`
	ComplianceNotes []string     `json:"compliance_notes"`
	Text            string       `json:"summary_text"`
}

// Lines is the compact form of the schedule, one element.BbsLine per bar mark.
func (r Result) Lines() []element.BbsLine {
	out := make([]element.BbsLine, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, element.BbsLine{
			Name:         it.BarMark,
			DiameterMM:   it.DiameterMM,
			Count:        it.NumBars,
			SpacingMM:    it.SpacingMM,
			UnitLengthM:  it.CuttingLengthM,
			TotalLengthM: it.TotalLengthM,
		})
	}
	return out
}

// settings are the resolved run-wide values.
type settings struct {
	designCode   string
	stockM       float64
	coverMM      float64
	minCoverMM   float64
	wastage      float64
	minSpacingMM float64
	spacingK     float64
}

func resolve(o Options, d materials.BBS) (settings, error) {
	s := settings{
		designCode:   d.DesignCode,
		stockM:       d.StockLengthM,
		coverMM:      d.CoverMM,
		minCoverMM:   d.CoverMM,
		wastage:      d.WastagePercent,
		minSpacingMM: d.MinSpacingMM,
		spacingK:     d.SpacingFactor,
	}
	if o.DesignCode != "" {
		s.designCode = o.DesignCode
	}
	if o.StockLengthM != 0 {
		if err := units.EnsurePositive("options.stock_length_m", o.StockLengthM); err != nil {
			return settings{}, err
		}
		s.stockM = o.StockLengthM
	}
	if o.CoverMM != 0 {
		if err := units.EnsurePositive("options.cover_mm", o.CoverMM); err != nil {
			return settings{}, err
		}
		s.coverMM = o.CoverMM
	}
	if o.WastagePercent != nil {
		if err := units.EnsureNonNegative("options.wastage_percent", *o.WastagePercent); err != nil {
			return settings{}, err
		}
		s.wastage = *o.WastagePercent
	}
	return s, nil
}

// run is the fold state of one schedule. It lives for a single Calculate call.
type run struct {
	marks     map[string]int
	notes     []string
	seenNotes map[string]bool
	byDia     map[float64]*DiameterTotal
	weight    float64
	length    float64
	bars      int
	cost      float64
	priced    bool
}

func newRun() *run {
	return &run{
		marks:     make(map[string]int),
		seenNotes: make(map[string]bool),
		byDia:     make(map[float64]*DiameterTotal),
	}
}

func (r *run) nextMark(member string) string {
	r.marks[member]++
	return fmt.Sprintf("%s-%02d", member, r.marks[member])
}

func (r *run) addNote(n string) {
	if r.seenNotes[n] {
		return
	}
	r.seenNotes[n] = true
	r.notes = append(r.notes, n)
}

func (r *run) add(it ResultItem, rawWeight float64) {
	r.weight += rawWeight
	r.length += it.TotalLengthM
	r.bars += it.NumBars
	t, ok := r.byDia[it.DiameterMM]
	if !ok {
		t = &DiameterTotal{DiameterMM: it.DiameterMM}
		r.byDia[it.DiameterMM] = t
	}
	t.NumBars += it.NumBars
	t.TotalLengthM += it.TotalLengthM
	t.TotalWeightKg += rawWeight
	if it.Cost != nil {
		r.priced = true
		r.cost += *it.Cost
	}
}

func (r *run) summary() Summary {
	s := Summary{
		TotalWeightKg:     rebar.RoundTo(r.weight, 2),
		TotalWeightTonnes: rebar.RoundTo(r.weight/1000, 3),
		TotalBars:         r.bars,
		TotalLengthM:      rebar.RoundTo(r.length, 2),
		ByDiameter:        make([]DiameterTotal, 0, len(r.byDia)),
	}
	if r.priced {
		c := rebar.RoundTo(r.cost, 2)
		s.TotalCost = &c
	}
	for _, t := range r.byDia {
		s.ByDiameter = append(s.ByDiameter, DiameterTotal{
			DiameterMM:    t.DiameterMM,
			NumBars:       t.NumBars,
			TotalLengthM:  rebar.RoundTo(t.TotalLengthM, 2),
			TotalWeightKg: rebar.RoundTo(t.TotalWeightKg, 2),
		})
	}
	sort.Slice(s.ByDiameter, func(i, j int) bool { return s.ByDiameter[i].DiameterMM < s.ByDiameter[j].DiameterMM })
	return s
}

func validateItem(it Item) error {
	if strings.TrimSpace(it.MemberID) == "" {
		return core.Invalid("member_id", "is required")
	}
	if it.BarType != "" && !it.BarType.Valid() {
		return core.Invalid("bar_type", "unsupported bar type %q", it.BarType)
	}
	if err := units.EnsurePositive("diameter_mm", it.DiameterMM); err != nil {
		return err
	}
	if it.NumBars <= 0 {
		return core.Invalid("num_bars", "must be at least 1")
	}
	if err := units.EnsureNonNegative("spacing_mm", it.SpacingMM); err != nil {
		return err
	}
	if !it.HookType.Valid() {
		return core.Invalid("hook_type", "unsupported hook type %q", it.HookType)
	}
	if it.HookType == rebar.HookCustom {
		if err := units.EnsurePositive("hook_length_mm", it.HookLengthMM); err != nil {
			return err
		}
	}
	for i, a := range it.BendAngles {
		if math.IsNaN(a) || a <= 0 || a > 180 {
			return core.Invalid(fmt.Sprintf("bend_angles[%d]", i), "must be in (0, 180] degrees")
		}
	}
	if it.DevelopmentLengthM != nil {
		if err := units.EnsureNonNegative("development_length_m", *it.DevelopmentLengthM); err != nil {
			return err
		}
	}
	if it.CoverMM != nil {
		if err := units.EnsureNonNegative("cover_mm", *it.CoverMM); err != nil {
			return err
		}
	}
	if it.WastagePercent != nil {
		if err := units.EnsureNonNegative("wastage_percent", *it.WastagePercent); err != nil {
			return err
		}
	}
	if err := units.EnsureNonNegative("lap_length_m", it.LapLengthM); err != nil {
		return err
	}
	if err := units.EnsureNonNegative("stock_length_m", it.StockLengthM); err != nil {
		return err
	}
	if it.UnitRatePerKg != nil {
		if err := units.EnsureNonNegative("unit_rate_per_kg", *it.UnitRatePerKg); err != nil {
			return err
		}
	}
	if it.ShapePreference != "" && !it.ShapePreference.Valid() {
		return core.Invalid("shape_preference", "unsupported shape %q", it.ShapePreference)
	}
	return nil
}

func hookText(h rebar.HookType, lengthM float64) string {
	if !h.Hooked() {
		return ""
	}
	kind := string(h) + "°"
	if h == rebar.HookCustom {
		kind = "custom"
	}
	return fmt.Sprintf("2 × %s hooks, %.3f m", kind, lengthM)
}

// schedule computes one row. Lengths are carried unrounded and rounded once
// when surfaced; weights use the rounded cutting length so that they match
// what is actually cut.
func (r *run) schedule(it Item, s settings) (ResultItem, float64, error) {
	if err := validateItem(it); err != nil {
		return ResultItem{}, 0, err
	}
	clearM, err := units.PositiveMeters("clear_length", it.ClearLength)
	if err != nil {
		return ResultItem{}, 0, err
	}

	if it.BarType == "" {
		it.BarType = RoleMain
	}
	d := it.DiameterMM
	cover := s.coverMM
	if it.CoverMM != nil {
		cover = *it.CoverMM
	}
	wastage := s.wastage
	if it.WastagePercent != nil {
		wastage = *it.WastagePercent
	}
	stock := s.stockM
	if it.StockLengthM > 0 {
		stock = it.StockLengthM
	}

	dev := rebar.DevelopmentLengthM(d)
	if it.DevelopmentLengthM != nil {
		dev = *it.DevelopmentLengthM
	}
	hooks := 2 * rebar.DefaultHookLengthM(it.HookType, d, it.HookLengthMM)
	bends := rebar.TotalBendAllowanceM(it.BendAngles, d)

	base := clearM - 2*cover/1000 + hooks + bends + dev
	if base <= 0 {
		return ResultItem{}, 0, core.Invalid("clear_length", "cutting length %.3f m is not positive after deducting cover", base)
	}

	cutting := base
	var splices int
	var lap float64
	if base > stock {
		segments := int(math.Ceil(base / stock))
		splices = segments - 1
		lap = rebar.SuggestLapLengthM(d)
		if it.LapLengthM > 0 {
			lap = it.LapLengthM
		}
		cutting = base + float64(splices)*lap
	}

	cut := rebar.RoundTo(cutting, 3)
	total := cut * float64(it.NumBars)
	uw := rebar.UnitWeightKgPerM(d)
	weight := uw * total * (1 + wastage/100)

	out := ResultItem{
		BarMark:            r.nextMark(it.MemberID),
		Shape:              InferShape(it),
		ElementType:        it.ElementType,
		MemberID:           it.MemberID,
		BarType:            it.BarType,
		DiameterMM:         d,
		NumBars:            it.NumBars,
		SpacingMM:          it.SpacingMM,
		CoverMM:            cover,
		DevelopmentLengthM: rebar.RoundTo(dev, 3),
		CuttingLengthM:     cut,
		TotalLengthM:       rebar.RoundTo(total, 3),
		UnitWeightKgPerM:   rebar.RoundTo(uw, 4),
		WastagePercent:     wastage,
		TotalWeightKg:      rebar.RoundTo(weight, 3),
		Hook:               hookText(it.HookType, hooks),
	}
	if splices > 0 {
		out.Splices = splices
		out.LapPerSpliceM = rebar.RoundTo(lap, 3)
		out.LapLengthM = rebar.RoundTo(float64(splices)*lap, 3)
		out.Lap = fmt.Sprintf("%d lap(s) × %.3f m over %d stock lengths of %g m", splices, lap, splices+1, stock)
	}
	if it.UnitRatePerKg != nil {
		c := rebar.RoundTo(weight*(*it.UnitRatePerKg), 2)
		out.Cost = &c
	}

	// Compared against the registry cover, not options.cover_mm.
	if cover < s.minCoverMM {
		out.Notes = append(out.Notes, fmt.Sprintf("Cover %g mm is below the %g mm default.", cover, s.minCoverMM))
	}
	if it.SpacingMM > 0 {
		minSpacing := math.Max(s.minSpacingMM, s.spacingK*d)
		if it.SpacingMM < minSpacing {
			out.Notes = append(out.Notes, fmt.Sprintf("Spacing %g mm is below the %g mm minimum for %g mm bars.", it.SpacingMM, minSpacing, d))
		}
	}
	for _, n := range out.Notes {
		r.addNote(n)
	}
	return out, weight, nil
}

// Calculate schedules every item in input order. Bar marks are numbered per
// member id in that order, so identical input always yields identical marks.
func Calculate(in Input, defaults materials.Defaults) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, core.Invalid("items", "at least one bar item is required")
	}
	s, err := resolve(in.Options, defaults.BBS)
	if err != nil {
		return Result{}, err
	}

	st := newRun()
	items := make([]ResultItem, 0, len(in.Items))
	for i, it := range in.Items {
		ri, weight, err := st.schedule(it, s)
		if err != nil {
			return Result{}, core.WithPrefix(fmt.Sprintf("items[%d]", i), err)
		}
		st.add(ri, weight)
		items = append(items, ri)
	}

	sum := st.summary()
	notes := st.notes
	if notes == nil {
		notes = []string{}
	}
	return Result{
		Input:           in,
		DesignCode:      s.designCode,
		Items:           items,
		Summary:         sum,
		ComplianceNotes: notes,
		Text:            summaryText(sum, len(items), s.designCode),
	}, nil
}

func summaryText(s Summary, marks int, code string) string {
	text := fmt.Sprintf("%d bar mark(s), %d bars, %.3f t of steel (%.2f kg) over %.2f m to %s.",
		marks, s.TotalBars, s.TotalWeightTonnes, s.TotalWeightKg, s.TotalLengthM, code)
	if s.TotalCost != nil {
		text += fmt.Sprintf(" Estimated cost %.2f.", *s.TotalCost)
	}
	return text
}
