package calendar

// =============================================================================
// HOLIDAY SET - Static non-working dates consulted by day counting
// =============================================================================

// HolidaySet is a lookup of calendar dates that do not count as working
// days. It is supplied to the day-counting logic and never mutated by it.
type HolidaySet map[Date]struct{}

// NewHolidaySet builds a set from ISO date strings. Invalid entries are
// dropped rather than failing the whole set; the source list is static and
// validated by tests.
func NewHolidaySet(isoDates []string) HolidaySet {
	set := make(HolidaySet, len(isoDates))
	for _, s := range isoDates {
		d, err := Parse(s)
		if err != nil {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether the date is a holiday.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d]
	return ok
}

// ChileanHolidays lists the national holidays consulted when counting
// chargeable days for business-day leave types.
var ChileanHolidays = []string{
	// 2025
	"2025-01-01", // Año Nuevo
	"2025-04-18", // Viernes Santo
	"2025-04-19", // Sábado Santo
	"2025-05-01", // Día del Trabajo
	"2025-05-21", // Glorias Navales
	"2025-06-20", // Pueblos Indígenas
	"2025-06-29", // San Pedro y San Pablo
	"2025-07-16", // Virgen del Carmen
	"2025-08-15", // Asunción de la Virgen
	"2025-09-18", // Independencia
	"2025-09-19", // Glorias del Ejército
	"2025-10-12", // Encuentro de Dos Mundos
	"2025-10-31", // Iglesias Evangélicas
	"2025-11-01", // Todos los Santos
	"2025-12-08", // Inmaculada Concepción
	"2025-12-25", // Navidad

	// 2026
	"2026-01-01",
	"2026-04-03", // Viernes Santo
	"2026-04-04",
	"2026-05-01",
	"2026-05-21",
	"2026-06-21",
	"2026-06-29",
	"2026-07-16",
	"2026-08-15",
	"2026-09-18",
	"2026-09-19",
	"2026-10-12",
	"2026-10-31",
	"2026-11-01",
	"2026-12-08",
	"2026-12-25",
}

// DefaultHolidays returns the holiday set used across the application.
func DefaultHolidays() HolidaySet {
	return NewHolidaySet(ChileanHolidays)
}
