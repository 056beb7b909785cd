package semver

import "gopkg.in/yaml.v3"

// UnmarshalYAML implements yaml.Unmarshaler for CalendarFormat.
func (f *CalendarFormat) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCalendarFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
