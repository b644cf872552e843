package srs

import "github.com/joshuaking1/cognispark-ai-sub000/internal/domain"

// Params holds the tunable values of the scheduler. Per-quality tables are
// indexed by domain.Quality.
type Params struct {
	InitialEaseFactor float64
	MinEaseFactor     float64
	MaxEaseFactor     float64

	EaseAdjustment   [4]float64
	IntervalModifier [4]float64

	// FirstIntervals is the interval in days after the first successful review.
	FirstIntervals [4]int

	// LapseGoodModifier scales the interval of a Good rating right after a lapse.
	LapseGoodModifier float64

	// AgainReviewMinutes delays a failed card by minutes instead of days.
	AgainReviewMinutes int
}

// Overrides replaces selected defaults. Zero values keep the default.
type Overrides struct {
	InitialEaseFactor  float64 `mapstructure:"initial_ease_factor" validate:"omitempty,gte=1.3"`
	MinEaseFactor      float64 `mapstructure:"min_ease_factor" validate:"omitempty,gt=1"`
	MaxEaseFactor      float64 `mapstructure:"max_ease_factor" validate:"omitempty,gt=1"`
	HardModifier       float64 `mapstructure:"hard_interval_modifier" validate:"omitempty,gt=0"`
	EasyModifier       float64 `mapstructure:"easy_interval_modifier" validate:"omitempty,gt=0"`
	FirstEasyInterval  int     `mapstructure:"first_easy_interval" validate:"omitempty,gte=1"`
	AgainReviewMinutes int     `mapstructure:"again_review_minutes" validate:"omitempty,gte=1"`
}

// NewDefaultParams returns the SM-2 variant used by the API server.
func NewDefaultParams() *Params {
	return &Params{
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,
		EaseAdjustment: [4]float64{
			domain.QualityAgain: -0.20,
			domain.QualityHard:  -0.15,
			domain.QualityGood:  0,
			domain.QualityEasy:  0.15,
		},
		IntervalModifier: [4]float64{
			domain.QualityAgain: 0,
			domain.QualityHard:  1.2,
			domain.QualityGood:  1.0,
			domain.QualityEasy:  1.3,
		},
		FirstIntervals: [4]int{
			domain.QualityAgain: 0,
			domain.QualityHard:  1,
			domain.QualityGood:  1,
			domain.QualityEasy:  2,
		},
		LapseGoodModifier:  1.5,
		AgainReviewMinutes: 10,
	}
}

// NewParams applies o on top of the defaults.
func NewParams(o Overrides) *Params {
	p := NewDefaultParams()
	if o.InitialEaseFactor > 0 {
		p.InitialEaseFactor = o.InitialEaseFactor
	}
	if o.MinEaseFactor > 0 {
		p.MinEaseFactor = o.MinEaseFactor
	}
	if o.MaxEaseFactor > 0 {
		p.MaxEaseFactor = o.MaxEaseFactor
	}
	if o.HardModifier > 0 {
		p.IntervalModifier[domain.QualityHard] = o.HardModifier
	}
	if o.EasyModifier > 0 {
		p.IntervalModifier[domain.QualityEasy] = o.EasyModifier
	}
	if o.FirstEasyInterval > 0 {
		p.FirstIntervals[domain.QualityEasy] = o.FirstEasyInterval
	}
	if o.AgainReviewMinutes > 0 {
		p.AgainReviewMinutes = o.AgainReviewMinutes
	}
	return p
}
