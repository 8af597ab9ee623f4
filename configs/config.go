package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Weather  WeatherConfig  `yaml:"weather"`
	Files    FilesConfig    `yaml:"files"`
	Db       DbConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
}

type BotConfig struct {
	Token       string        `yaml:"token" validate:"required"`
	AdminIds    []int64       `yaml:"adminIds"`
	SendTimeout time.Duration `yaml:"sendTimeout" validate:"gt=0"`
	// messages per second across one broadcast
	RateLimit int `yaml:"rateLimit" validate:"gt=0"`
}

type ScheduleConfig struct {
	Timezone   string        `yaml:"timezone" validate:"required,timezone"`
	DigestTime string        `yaml:"digestTime" validate:"required,clock"`
	LessonLead time.Duration `yaml:"lessonLead" validate:"gte=0"`
	KeepAlive  time.Duration `yaml:"keepAlive" validate:"gt=0"`
}

type WeatherConfig struct {
	ApiKey  string        `yaml:"apiKey"`
	BaseUrl string        `yaml:"baseUrl"`
	Cities  []string      `yaml:"cities"`
	Timeout time.Duration `yaml:"timeout"`
}

type FilesConfig struct {
	Chats     string `yaml:"chats"`
	Answers   string `yaml:"answers"`
	Pid       string `yaml:"pid"`
	Images    string `yaml:"images"`
	Timetable string `yaml:"timetable"`
}

type DbConfig struct {
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	DbName string `yaml:"dbName"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c DbConfig) DSN() string {
	return "cproto://" + c.User + ":" + c.Pass + "@" + c.Host + ":" + c.Port + "/" + c.DbName
}

func Default() Config {
	return Config{
		Bot: BotConfig{
			SendTimeout: 30 * time.Second,
			RateLimit:   30,
		},
		Schedule: ScheduleConfig{
			Timezone:   "Europe/Moscow",
			DigestTime: "7:30",
			LessonLead: 10 * time.Minute,
			KeepAlive:  5 * time.Minute,
		},
		Weather: WeatherConfig{
			BaseUrl: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
			Cities:  []string{"Moscow", "Podolsk"},
			Timeout: 10 * time.Second,
		},
		Files: FilesConfig{
			Chats:   "chats.json",
			Answers: "answers.json",
			Pid:     "bot.pid",
			Images:  "images",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// DecodeConfig reads the YAML file at path over the defaults, then applies
// .env and environment overrides. A missing file is not an error.
func DecodeConfig(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, errors.Wrapf(err, "decode %s", path)
		}
	case !os.IsNotExist(err):
		return cfg, errors.Wrapf(err, "open %s", path)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(err, "load .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		c.Bot.Token = token
	}
	if key := strings.TrimSpace(os.Getenv("WEATHER_API_KEY")); key != "" {
		c.Weather.ApiKey = key
	}
	if ids := strings.TrimSpace(os.Getenv("ADMIN_IDS")); ids != "" {
		parsed, err := ParseIds(ids)
		if err != nil {
			return errors.Wrap(err, "ADMIN_IDS")
		}
		c.Bot.AdminIds = parsed
	}
	return nil
}

// ParseIds parses a comma separated list of chat or user IDs.
func ParseIds(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate checks the config against its validate tags and reports every
// failing field by its YAML path.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate config")
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Translate(translator)))
	}
	return errors.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Warnings lists settings that are empty but should be set for a full deployment.
func (c Config) Warnings() []string {
	var warnings []string
	if c.Weather.ApiKey == "" {
		warnings = append(warnings, "weather api key is not set (WEATHER_API_KEY), the digest will report weather as unavailable")
	}
	if len(c.Bot.AdminIds) == 0 {
		warnings = append(warnings, "admin list is empty (ADMIN_IDS), nobody can manage answers")
	}
	return warnings
}

func (s ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "schedule.timezone %q", s.Timezone)
	}
	return loc, nil
}

// DigestAt returns the digest time as hour and minute.
func (s ScheduleConfig) DigestAt() (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s.DigestTime))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "schedule.digestTime %q", s.DigestTime)
	}
	return t.Hour(), t.Minute(), nil
}
