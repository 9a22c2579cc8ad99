package importer

import (
	"fmt"
	"strings"
)

// ValidateAuthoring reports producer-side inconsistencies in a decoded
// block. The results are warnings; the block still converts.
func ValidateAuthoring(ab *AuthoringBlock) []error {
	var errs []error

	content, ok := ab.Content()
	if !ok {
		return []error{fmt.Errorf("one of Weeks, Days or Exercises is required")}
	}

	switch c := content.(type) {
	case WeeksContent:
		if n, set := ab.NumberOfWeeks.Int(); set && n != len(c.Weeks) {
			errs = append(errs, fmt.Errorf("NumberOfWeeks (%d) does not match len(Weeks) (%d)", n, len(c.Weeks)))
		}
		for w, days := range c.Weeks {
			if len(days) == 0 {
				errs = append(errs, fmt.Errorf("Weeks[%d] has no days", w))
				continue
			}
			if w > 0 && len(days) != len(c.Weeks[0]) {
				errs = append(errs, fmt.Errorf("Weeks[%d] has %d days, Weeks[0] has %d", w, len(days), len(c.Weeks[0])))
			}
			errs = append(errs, validateDays(fmt.Sprintf("Weeks[%d]", w), days)...)
		}
		if len(ab.Days) > 0 || len(ab.Exercises) > 0 {
			errs = append(errs, fmt.Errorf("Weeks is set; Days and Exercises are ignored"))
		}
	case DaysContent:
		errs = append(errs, validateDays("Days", c.Days)...)
		if len(ab.Exercises) > 0 {
			errs = append(errs, fmt.Errorf("Days is set; Exercises is ignored"))
		}
	case ExercisesContent:
		if len(c.Exercises) == 0 {
			errs = append(errs, fmt.Errorf("Exercises is empty"))
		}
		errs = append(errs, validateExercises("Exercises", c.Exercises)...)
	}

	return errs
}

func validateDays(prefix string, days []AuthoringDay) []error {
	var errs []error
	for i, d := range days {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(d.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		}
		if len(d.Exercises) == 0 && len(d.Segments) == 0 {
			errs = append(errs, fmt.Errorf("%s has neither exercises nor segments", path))
		}
		errs = append(errs, validateExercises(path+".exercises", d.Exercises)...)
		for j, seg := range d.Segments {
			if strings.TrimSpace(seg.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.segments[%d].name is required", path, j))
			}
		}
	}
	return errs
}

func validateExercises(prefix string, exercises []AuthoringExercise) []error {
	var errs []error
	for i, ex := range exercises {
		if strings.TrimSpace(ex.Name) == "" {
			errs = append(errs, fmt.Errorf("%s[%d].name is required", prefix, i))
		}
		if n, set := ex.Sets.Int(); set && n <= 0 {
			errs = append(errs, fmt.Errorf("%s[%d].sets must be positive", prefix, i))
		}
	}
	return errs
}
