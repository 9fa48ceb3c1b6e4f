// Package logtail reads the tail of marquee's log file and decodes its
// entries.
//
// marquee logs through logrus with the JSON formatter, one object per line:
//
//	{"component":"tmdb","level":"debug","msg":"api request","path":"/movie/upcoming","status":200,"time":"2026-10-19T10:00:00Z"}
//
// Read extracts the last N lines with a ring buffer, so memory stays
// O(maxLines) no matter how large the file grows. A missing file is not an
// error; it yields no lines.
//
// Parse turns a line back into an Entry (time, level, component, message,
// error and remaining fields). Lines that are not JSON are kept verbatim in
// Entry.Raw at info level so nothing is silently dropped. ParseLines applies a
// minimum level filter on top.
//
// Presentation (colors, columns) is left to the caller.
package logtail
