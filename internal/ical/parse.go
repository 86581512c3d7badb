// Package ical handles the third-party calendar feed format: parsing inbound
// reservation feeds, fetching them over HTTP, and publishing this system's
// own bookings as an ICS document.
//
// The inbound parser is deliberately hand-rolled. Feeds in the wild arrive
// truncated, mis-folded, or with junk blocks, and the sync path wants every
// salvageable event rather than a parse error, so each block is parsed
// independently and malformed units are dropped and counted.
package ical

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"rentdesk/internal/logger"
)

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"

	placeholderSummary = "Imported reservation"
)

// Event is one normalized reservation event extracted from a feed. Start and
// End are always set (events without both are dropped); Summary and UID fall
// back to placeholders when the feed omits them.
type Event struct {
	Summary string
	UID     string
	Start   time.Time
	End     time.Time
}

// Result carries the parsed events plus the number of blocks that had to be
// skipped, so operators can tell a quiet feed from a broken one.
type Result struct {
	Events  []Event
	Skipped int
}

// Parse extracts events from a raw feed document. It never fails: malformed
// blocks are skipped individually, and a document that cannot be processed at
// all yields an empty result.
func Parse(raw string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("feed parse aborted", "panic", r)
			res = Result{}
		}
	}()

	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	lines := unfold(raw)

	var inEvent bool
	var fields map[string]string

	for _, line := range lines {
		switch {
		case strings.EqualFold(line, beginEvent):
			// A BEGIN inside an open block means the previous one never
			// terminated; drop it.
			if inEvent {
				res.Skipped++
			}
			inEvent = true
			fields = make(map[string]string)

		case strings.EqualFold(line, endEvent):
			if !inEvent {
				res.Skipped++
				continue
			}
			inEvent = false
			if ev, ok := buildEvent(fields); ok {
				res.Events = append(res.Events, ev)
			} else {
				res.Skipped++
			}

		case inEvent:
			name, value, ok := splitContentLine(line)
			if !ok {
				continue
			}
			fields[name] = value
		}
	}

	// Unterminated trailing block.
	if inEvent {
		res.Skipped++
	}

	if res.Skipped > 0 {
		logger.Warn("feed parse skipped malformed blocks", "skipped", res.Skipped, "parsed", len(res.Events))
	}
	return res
}

// unfold joins physical continuation lines (leading space or tab) back onto
// their logical line before any field extraction happens.
func unfold(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	physical := strings.Split(raw, "\n")

	var logical []string
	for _, line := range physical {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(logical) > 0 {
			logical[len(logical)-1] += line[1:]
			continue
		}
		if trimmed := strings.TrimRight(line, "\r"); trimmed != "" {
			logical = append(logical, trimmed)
		}
	}
	return logical
}

// splitContentLine separates a content line into property name and value.
// The value starts after the last colon on the line: property parameters
// (DTSTART;TZID=...:20240101) put delimiters ahead of the real value.
func splitContentLine(line string) (name, value string, ok bool) {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return "", "", false
	}

	head := line[:idx]
	value = line[idx+1:]

	// Property name runs up to the first delimiter. When the value itself
	// contains colons (SUMMARY:Booked: guest stay), head still holds
	// everything before the last one, so both separators must cut it.
	if semi := strings.Index(head, ";"); semi >= 0 {
		head = head[:semi]
	}
	if colon := strings.Index(head, ":"); colon >= 0 {
		head = head[:colon]
	}
	name = strings.ToUpper(strings.TrimSpace(head))
	if name == "" {
		return "", "", false
	}
	return name, sanitize(value), true
}

// sanitize undoes feed-level escaping and strips characters that downstream
// message templating could misinterpret. Feed content is untrusted.
func sanitize(v string) string {
	v = strings.TrimSpace(v)
	v = strings.ReplaceAll(v, `\n`, " ")
	v = strings.ReplaceAll(v, `\N`, " ")
	v = strings.ReplaceAll(v, `\,`, ",")
	v = strings.ReplaceAll(v, `\;`, ";")
	v = strings.ReplaceAll(v, `\\`, `\`)

	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		switch {
		case r < 0x20 || r == 0x7f:
			// control characters
		case r == '{' || r == '}' || r == '$' || r == '`':
			// template-injection characters
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// buildEvent assembles a normalized event from a block's fields. Start and
// end are mandatory; summary and UID get placeholders so an event is never
// dropped over missing metadata alone.
func buildEvent(fields map[string]string) (Event, bool) {
	start, err := ParseTimestamp(fields["DTSTART"])
	if err != nil {
		return Event{}, false
	}
	end, err := ParseTimestamp(fields["DTEND"])
	if err != nil {
		return Event{}, false
	}
	if end.Before(start) {
		return Event{}, false
	}

	ev := Event{
		Summary: fields["SUMMARY"],
		UID:     fields["UID"],
		Start:   start,
		End:     end,
	}
	if ev.Summary == "" {
		ev.Summary = placeholderSummary
	}
	if ev.UID == "" {
		ev.UID = uuid.NewString() + "@rentdesk"
	}
	return ev, true
}

// ParseTimestamp normalizes the feed's two date encodings into UTC: the
// date-only compact form (20240115) and the date-time compact form with an
// optional UTC marker (20240115T093000 / 20240115T093000Z).
func ParseTimestamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)

	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.UTC)
	}
	return time.ParseInLocation("20060102", v, time.UTC)
}
