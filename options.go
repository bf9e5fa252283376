package glitch

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Options is the flat configuration recognised by every effect family.
// Zero (or negative) values mean "use the family default"; out-of-range
// values are clamped by Normalize rather than rejected.
type Options struct {
	Count              int       `yaml:"count" validate:"gte=0,lte=2000"`
	MinSize            float64   `yaml:"minSize" validate:"gte=0,lte=200"`
	MaxSize            float64   `yaml:"maxSize" validate:"gte=0,lte=200,gtefield=MinSize"`
	Speed              float64   `yaml:"speed" validate:"gte=0,lte=50"`
	Color              string    `yaml:"color" validate:"color"`
	Colors             []string  `yaml:"colors" validate:"dive,color"`
	ConnectionDistance float64   `yaml:"connectionDistance" validate:"gte=0,lte=500"`
	LineOpacity        float64   `yaml:"lineOpacity" validate:"gte=0,lte=1"`
	MouseInteraction   *bool     `yaml:"mouseInteraction"`
	MouseRadius        float64   `yaml:"mouseRadius" validate:"gte=0,lte=2000"`
	MouseMode          MouseMode `yaml:"mouseMode" validate:"oneof=repel attract"`
	MaxSpeed           float64   `yaml:"maxSpeed" validate:"gte=0,lte=100"`
	Position           Position  `yaml:"position" validate:"oneof=fixed absolute"`
	Depth              float64   `yaml:"depth" validate:"gte=0,lte=10000"`
	Direction          Direction `yaml:"direction" validate:"oneof=down up left right"`
	Resolution         int       `yaml:"resolution" validate:"gte=0,lte=64"`
	Seed               int64     `yaml:"seed"`
}

// Bool returns a pointer to b, for Options.MouseInteraction literals.
func Bool(b bool) *bool {
	return &b
}

// Interactive reports whether pointer forces are enabled.
func (o Options) Interactive() bool {
	return o.MouseInteraction != nil && *o.MouseInteraction
}

// Adjustment records one option Normalize had to change.
type Adjustment struct {
	Field string
	Rule  string
	From  string
	To    string
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s: %s violates %q, using %s", a.Field, a.From, a.Rule, a.To)
}

// DefaultOptions returns the documented defaults of a family. Unknown
// families get the particle defaults.
func DefaultOptions(f Family) Options {
	o := Options{
		Count:              80,
		MinSize:            1,
		MaxSize:            3,
		Speed:              1,
		Color:              "rgba(255,255,255,0.8)",
		ConnectionDistance: 120,
		LineOpacity:        0.2,
		MouseInteraction:   Bool(false),
		MouseRadius:        150,
		MouseMode:          MouseRepel,
		MaxSpeed:           4,
		Position:           PositionFixed,
		Depth:              1000,
		Direction:          DirectionDown,
		Resolution:         4,
	}
	switch f {
	case FamilyParticles:
		o.MouseInteraction = Bool(true)
	case FamilySnow:
		o.Count = 120
		o.MinSize, o.MaxSize = 1, 4
		o.Color = "#ffffff"
	case FamilyFireflies:
		o.Count = 40
		o.MinSize, o.MaxSize = 1, 3
		o.Speed = 0.5
		o.Color = "#f7e463"
	case FamilyBubbles:
		o.Count = 30
		o.MinSize, o.MaxSize = 4, 18
		o.Color = "rgba(120,200,255,0.7)"
		o.Direction = DirectionUp
	case FamilyStarfield:
		o.Count = 400
		o.MinSize, o.MaxSize = 0.5, 2.5
		o.Speed = 4
	case FamilyPlasma:
		o.Colors = []string{"#ff00ff", "#00ffff", "#0a0a23", "#ff0055"}
	case FamilyFog:
		o.Colors = []string{"#05050a", "#2a2a40", "#8a8aa8"}
		o.Resolution = 6
	}
	return o
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// optionsValidator returns the shared validator with the "color" rule.
func optionsValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return ValidColor(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Normalize fills unset options from the family defaults and clamps
// everything else into range. It never fails; every change it makes is
// reported as an Adjustment.
func Normalize(f Family, o Options) (Options, []Adjustment) {
	def := DefaultOptions(f)
	fillDefaults(&o, def)

	err := optionsValidator().Struct(o)
	if err == nil {
		return o, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return def, []Adjustment{{Field: "Options", Rule: "valid", From: err.Error(), To: "defaults"}}
	}

	var adj []Adjustment
	colorsChecked := false
	for _, fe := range verrs {
		name := fe.StructField()
		switch {
		case strings.HasPrefix(name, "Colors"):
			if colorsChecked {
				continue
			}
			colorsChecked = true
			adj = append(adj, fixColors(&o, def))
		case fe.Tag() == "gtefield":
			adj = append(adj, Adjustment{
				Field: name, Rule: fe.Tag() + "=" + fe.Param(),
				From: fmt.Sprint(o.MaxSize), To: fmt.Sprint(o.MinSize),
			})
			o.MaxSize = o.MinSize
		case fe.Tag() == "lte" || fe.Tag() == "gte":
			adj = append(adj, clampField(&o, name, fe.Tag(), fe.Param()))
		default:
			adj = append(adj, resetField(&o, def, name, fe.Tag()))
		}
	}
	// Clamping MinSize may have broken the size band again.
	if o.MaxSize < o.MinSize {
		adj = append(adj, Adjustment{Field: "MaxSize", Rule: "gtefield=MinSize", From: fmt.Sprint(o.MaxSize), To: fmt.Sprint(o.MinSize)})
		o.MaxSize = o.MinSize
	}
	return o, adj
}

// fillDefaults replaces zero, negative, NaN or empty fields with the defaults.
func fillDefaults(o *Options, def Options) {
	v := reflect.ValueOf(o).Elem()
	d := reflect.ValueOf(def)
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Int, reflect.Int64:
			if fv.Int() <= 0 {
				fv.SetInt(d.Field(i).Int())
			}
		case reflect.Float64:
			if v := fv.Float(); v <= 0 || math.IsNaN(v) {
				fv.SetFloat(d.Field(i).Float())
			}
		case reflect.String:
			if strings.TrimSpace(fv.String()) == "" {
				fv.SetString(d.Field(i).String())
			}
		case reflect.Slice, reflect.Pointer:
			if fv.IsNil() || (fv.Kind() == reflect.Slice && fv.Len() == 0) {
				fv.Set(d.Field(i))
			}
		}
	}
}

// clampField sets a numeric field to the bound named by a gte/lte rule.
func clampField(o *Options, name, tag, param string) Adjustment {
	fv := reflect.ValueOf(o).Elem().FieldByName(name)
	a := Adjustment{Field: name, Rule: tag + "=" + param}
	switch fv.Kind() {
	case reflect.Int, reflect.Int64:
		bound, _ := strconv.ParseInt(param, 10, 64)
		a.From = strconv.FormatInt(fv.Int(), 10)
		fv.SetInt(bound)
	case reflect.Float64:
		bound, _ := strconv.ParseFloat(param, 64)
		a.From = strconv.FormatFloat(fv.Float(), 'g', -1, 64)
		fv.SetFloat(bound)
	}
	a.To = param
	return a
}

// resetField replaces a field with its family default.
func resetField(o *Options, def Options, name, tag string) Adjustment {
	fv := reflect.ValueOf(o).Elem().FieldByName(name)
	dv := reflect.ValueOf(def).FieldByName(name)
	a := Adjustment{Field: name, Rule: tag, From: fmt.Sprint(fv.Interface()), To: fmt.Sprint(dv.Interface())}
	fv.Set(dv)
	return a
}

// fixColors drops unparseable entries from the color list, falling back to
// the family defaults when nothing usable is left.
func fixColors(o *Options, def Options) Adjustment {
	a := Adjustment{Field: "Colors", Rule: "dive,color", From: strings.Join(o.Colors, " ")}
	kept := o.Colors[:0:0]
	for _, c := range o.Colors {
		if ValidColor(c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		kept = def.Colors
	}
	o.Colors = kept
	a.To = strings.Join(kept, " ")
	return a
}
