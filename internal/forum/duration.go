package forum

import (
	"fmt"
	"time"
)

// FormatMuteRemaining renders a remaining mute duration for display, in the
// product's Spanish copy: minutes, hours plus minutes, or days plus hours.
func FormatMuteRemaining(d time.Duration) string {
	total := int(d.Minutes())
	if total < 1 {
		return "menos de 1 minuto"
	}

	if total < 60 {
		return pluralize(total, "minuto", "minutos")
	}

	if total < 24*60 {
		hours := total / 60
		minutes := total % 60
		if minutes == 0 {
			return pluralize(hours, "hora", "horas")
		}
		return fmt.Sprintf("%s y %s",
			pluralize(hours, "hora", "horas"),
			pluralize(minutes, "minuto", "minutos"))
	}

	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	if hours == 0 {
		return pluralize(days, "día", "días")
	}
	return fmt.Sprintf("%s y %s",
		pluralize(days, "día", "días"),
		pluralize(hours, "hora", "horas"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
