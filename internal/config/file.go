package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/MikeBiancalana/datepick/internal/picker"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a profile name is not in the file
var ErrUnknownProfile = errors.New("unknown profile")

// DefaultProfile is used when no profile name is given
const DefaultProfile = "default"

// Profile is one named picker configuration
type Profile struct {
	Title            string            `yaml:"title,omitempty"`
	Value            string            `yaml:"value,omitempty"`
	Min              string            `yaml:"min,omitempty"`
	Max              string            `yaml:"max,omitempty"`
	DateOnly         bool              `yaml:"date_only,omitempty"`
	MinuteStep       int               `yaml:"minute_step,omitempty"`
	AllowPartialTime bool              `yaml:"allow_partial_time,omitempty"`
	Commit           string            `yaml:"commit,omitempty"`
	YearOrder        string            `yaml:"year_order,omitempty"`
	Disabled         bool              `yaml:"disabled,omitempty"`
	Error            string            `yaml:"error,omitempty"`
	Locale           string            `yaml:"locale,omitempty"`
	Placeholders     map[string]string `yaml:"placeholders,omitempty"`
}

// File is the on-disk configuration
type File struct {
	Locale   string              `yaml:"locale,omitempty"`
	Timezone string              `yaml:"timezone,omitempty"`
	Profiles map[string]*Profile `yaml:"profiles"`
}

// Defaults returns the built-in profiles used when no file exists
func Defaults() *File {
	return &File{
		Profiles: map[string]*Profile{
			DefaultProfile: {
				Title:      "Date and time",
				MinuteStep: picker.DefaultMinuteStep,
			},
			"birthdate": {
				Title:     "Birthday",
				DateOnly:  true,
				Min:       "1950-01-01",
				Max:       "-16y",
				Commit:    string(picker.CommitBlur),
				YearOrder: string(picker.YearsDescending),
				Error:     "You must be 16 or older",
			},
			"release": {
				Title:      "Chapter release",
				MinuteStep: 15,
				Min:        "now",
				Max:        "+90d",
			},
		},
	}
}

// Load reads the config file at path. A missing file yields Defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config and validates every profile
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(f.Profiles) == 0 {
		f.Profiles = Defaults().Profiles
	}
	for name, p := range f.Profiles {
		if p == nil {
			f.Profiles[name] = &Profile{}
			continue
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
	}
	if _, err := f.Location(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes the file as YAML
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Names returns the profile names sorted
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile looks up a profile by name; empty means DefaultProfile
func (f *File) Profile(name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := f.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// Location resolves the configured timezone, defaulting to local time
func (f *File) Location() (*time.Location, error) {
	if f.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", f.Timezone, err)
	}
	return loc, nil
}

func (p *Profile) validate() error {
	if _, err := picker.ParseCommitMode(p.Commit); err != nil {
		return err
	}
	if _, err := picker.ParseYearOrder(p.YearOrder); err != nil {
		return err
	}
	if p.MinuteStep < 0 || p.MinuteStep > 60 {
		return fmt.Errorf("minute_step %d out of range 0..60", p.MinuteStep)
	}
	for _, expr := range []string{p.Value, p.Min, p.Max} {
		if expr == "" {
			continue
		}
		if _, err := ParseBound(expr, time.Now()); err != nil {
			return err
		}
	}
	for key := range p.Placeholders {
		if _, err := picker.ParseField(key); err != nil {
			return fmt.Errorf("placeholders: %w", err)
		}
	}
	return nil
}

// PickerOptions turns the profile into engine options. Relative bounds are
// resolved against now; locale falls back to the file's, then to the
// environment's.
func (p *Profile) PickerOptions(f *File, now time.Time) (picker.Options, error) {
	opts := picker.DefaultOptions()

	loc, err := f.Location()
	if err != nil {
		return opts, err
	}
	now = now.In(loc)

	opts.Location = loc
	opts.Now = func() time.Time { return now }
	opts.WithTime = !p.DateOnly
	opts.AllowPartialTime = p.AllowPartialTime
	opts.Disabled = p.Disabled
	opts.Error = p.Error
	if p.MinuteStep > 0 {
		opts.MinuteStep = p.MinuteStep
	}

	if opts.CommitMode, err = picker.ParseCommitMode(p.Commit); err != nil {
		return opts, err
	}
	if opts.YearOrder, err = picker.ParseYearOrder(p.YearOrder); err != nil {
		return opts, err
	}

	if opts.Value, err = resolveBound(p.Value, now); err != nil {
		return opts, fmt.Errorf("value: %w", err)
	}
	if opts.Min, err = resolveBound(p.Min, now); err != nil {
		return opts, fmt.Errorf("min: %w", err)
	}
	if opts.Max, err = resolveBound(p.Max, now); err != nil {
		return opts, fmt.Errorf("max: %w", err)
	}

	opts.Locale = firstNonEmpty(p.Locale, f.Locale, EnvLocale())

	if len(p.Placeholders) > 0 {
		opts.Placeholders = make(map[picker.Field]string, len(p.Placeholders))
		for key, text := range p.Placeholders {
			field, err := picker.ParseField(key)
			if err != nil {
				return opts, err
			}
			opts.Placeholders[field] = text
		}
	}

	return opts, nil
}

func resolveBound(expr string, now time.Time) (*time.Time, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	t, err := ParseBound(expr, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EnvLocale reads the locale from LC_ALL, LC_TIME or LANG
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" && v != "C" && v != "POSIX" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
