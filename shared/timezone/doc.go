// Package timezone provides the application clock and time zone helpers.
//
// Usage:
//
//	now := timezone.Now()                          // current time in the app zone
//	t, err := timezone.Parse(time.RFC3339, value)  // zone-less values read in the app zone
//	abs := timezone.Normalize(t)                   // absolute UTC instant for collaborators
//
// The zone is configured via APP_TIMEZONE using IANA names ("UTC", "America/Sao_Paulo")
// and is initialized when the package is imported, falling back to UTC.
package timezone
