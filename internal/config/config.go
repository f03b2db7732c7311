package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	SearchURL string `yaml:"search_url"`
}

// Criteria are the buyer's hard and soft filters. Loaded once at
// startup and treated as immutable for the process lifetime.
type Criteria struct {
	YearMin       int    `yaml:"year_min"`
	YearMax       int    `yaml:"year_max"`
	PriceMin      int    `yaml:"price_min"`
	PriceMax      int    `yaml:"price_max"`
	MaxKm         int    `yaml:"max_km"`
	Transmission  string `yaml:"transmission"`
	Color         string `yaml:"color"`
	PriorityPlate string `yaml:"priority_plate"`
}

// ScoringWeights names every adjustment the priority scorer applies,
// so the ranking policy is tunable without touching pipeline code.
type ScoringWeights struct {
	Base               int `yaml:"base"`
	PriorityPlateBonus int `yaml:"priority_plate_bonus"`
	KmUnder20K         int `yaml:"km_under_20k"`
	KmUnder40K         int `yaml:"km_under_40k"`
	KmUnder60K         int `yaml:"km_under_60k"`
	NewestYearBonus    int `yaml:"newest_year_bonus"`
	SecondYearBonus    int `yaml:"second_year_bonus"`
	HighPriceOver      int `yaml:"high_price_over"`
	HighPricePenalty   int `yaml:"high_price_penalty"`
	LowPriceUnder      int `yaml:"low_price_under"`
	LowPriceBonus      int `yaml:"low_price_bonus"`
}

type Config struct {
	App struct {
		DataDir  string `yaml:"data_dir"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Polling struct {
		IntervalSeconds int `yaml:"interval_seconds"`
		NotifyDelayMS   int `yaml:"notify_delay_ms"`
	} `yaml:"polling"`

	Criteria Criteria `yaml:"criteria"`

	Keywords struct {
		Include []string `yaml:"include"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"keywords"`

	Scoring ScoringWeights `yaml:"scoring"`

	Limits struct {
		MaxNotificationsPerHour      int `yaml:"max_notifications_per_hour"`
		MaxErrorNotificationsPerHour int `yaml:"max_error_notifications_per_hour"`
		RetentionDays                int `yaml:"retention_days"`
	} `yaml:"limits"`

	Sources struct {
		OLX      SourceConfig `yaml:"olx"`
		Mobil123 SourceConfig `yaml:"mobil123"`
		Carmudi  SourceConfig `yaml:"carmudi"`
		Jualo    SourceConfig `yaml:"jualo"`
	} `yaml:"sources"`

	Request struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent"`
	} `yaml:"request"`

	Telegram struct {
		ChatID         string `yaml:"chat_id"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"telegram"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default returns the configuration the original deployment ran with:
// a white manual Avanza/Veloz, 2019-2021, 120-190 juta, under 60k km,
// Bogor-area ("F") plates preferred.
func Default() Config {
	var cfg Config

	cfg.App.DataDir = "."
	cfg.App.LogLevel = "info"

	cfg.Polling.IntervalSeconds = 180
	cfg.Polling.NotifyDelayMS = 1000

	cfg.Criteria = Criteria{
		YearMin:       2019,
		YearMax:       2021,
		PriceMin:      120_000_000,
		PriceMax:      190_000_000,
		MaxKm:         60_000,
		Transmission:  "manual",
		Color:         "putih",
		PriorityPlate: "F",
	}

	cfg.Keywords.Include = []string{"avanza", "veloz", "avansa", "avnza"}
	cfg.Keywords.Exclude = []string{
		"innova", "fortuner", "rush", "calya", "sigra", "xenia",
		"terios", "ayla", "agya", "yaris", "vios", "camry", "alphard",
		"xpander", "ertiga", "livina", "mobilio", "brv", "hrv", "crv",
	}

	cfg.Scoring = ScoringWeights{
		Base:               50,
		PriorityPlateBonus: 30,
		KmUnder20K:         15,
		KmUnder40K:         10,
		KmUnder60K:         5,
		NewestYearBonus:    10,
		SecondYearBonus:    5,
		HighPriceOver:      180_000_000,
		HighPricePenalty:   -5,
		LowPriceUnder:      140_000_000,
		LowPriceBonus:      5,
	}

	cfg.Limits.MaxNotificationsPerHour = 10
	cfg.Limits.MaxErrorNotificationsPerHour = 1
	cfg.Limits.RetentionDays = 30

	cfg.Sources.OLX = SourceConfig{
		Enabled:   true,
		SearchURL: "https://www.olx.co.id/mobil-bekas_c198/q-avanza-veloz",
	}
	cfg.Sources.Mobil123 = SourceConfig{
		Enabled:   true,
		SearchURL: "https://www.mobil123.com/mobil-dijual/toyota/avanza/indonesia?year_min=2019&year_max=2021&price_min=120000000&price_max=190000000",
	}
	cfg.Sources.Carmudi = SourceConfig{
		Enabled:   true,
		SearchURL: "https://www.carmudi.co.id/cars/toyota/avanza/?condition=used&year_from=2019&year_to=2021&price_from=120000000&price_to=190000000",
	}
	cfg.Sources.Jualo = SourceConfig{
		Enabled:   true,
		SearchURL: "https://www.jualo.com/mobil-bekas/toyota+avanza?ob=date&o=desc",
	}

	cfg.Telegram.KeyringAccount = "default"

	cfg.Request.TimeoutSeconds = 30
	cfg.Request.UserAgent = "Mozilla/5.0 (Linux; Android 10; SM-G975F) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"

	return cfg
}
