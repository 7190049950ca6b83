// Package timezone provides the wall-clock arithmetic the booking engine is
// built on.
//
// Two families of helpers live here:
//
//  1. Application-timezone helpers driven by the APP_TIMEZONE environment
//     variable (Now, ToAppTime, Format) used for audit metadata and logging.
//
//  2. Pure zoned arithmetic used by the availability builder and booking
//     resolver: ToInstant converts a YYYY-MM-DD date key plus hour/minute in a
//     named zone to an absolute instant, ToZonedParts inverts it, and
//     MonthRange/DaysInMonth expand a YYYY-MM month key into its instant range
//     and date keys.
//
// Only standard IANA timezone database names are supported: "UTC",
// "Europe/Athens", "America/New_York", and so on.
package timezone
