// Package titleclean deterministically reduces a raw release-scene filename
// or folder name to a canonical search title plus an optional release year.
package titleclean

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Result is the outcome of cleaning one raw name.
type Result struct {
	Title string
	Year  *int
	// TMDbHint carries an explicit "{tmdb 12345}" override extracted from
	// the raw string, when present.
	TMDbHint *int
}

var titleCaser = cases.Title(language.English)

var forbiddenPattern = regexp.MustCompile(`(?i)\b(trailer|behind[\s._-]*the[\s._-]*scenes?|making[\s._-]*of|deleted[\s._-]*scenes?|bonus|extras?|sample|featurette|interview|ratings?[\s._-]*notice)\b`)

var tmdbHintPattern = regexp.MustCompile(`(?i)\{tmdb[\s:-]*(\d+)\}`)

var yearParenPattern = regexp.MustCompile(`\((\d{4})\)`)
var yearBarePattern = regexp.MustCompile(`(?:^|[^\d])(\d{4})(?:[^\d]|$)`)

var channelPrefixPattern = regexp.MustCompile(`^\s*\[[^\]]{1,20}\]\s*`)

var bracketPattern = regexp.MustCompile(`[\[({][^\[\]{}()]*[\]})]`)

var leadingIndexPattern = regexp.MustCompile(`^\s*\d{1,3}[.\s]+`)

var videoExtPattern = regexp.MustCompile(`(?i)\.(mp4|mkv|avi|ts|mov|wmv|m4v|flv|webm|mpg|mpeg)$`)

var junkKeywords = []string{
	"dubbed", "dub", "subbed", "sub", "uncut", "extended", "directors cut",
	"director's cut", "unrated", "remastered", "repack", "proper",
}

// episode marker patterns, tried leftmost-match-wins across the whole set.
var episodeMarkerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)S(\d{1,2})E(\d{1,3})`),
	regexp.MustCompile(`(?i)\bSeason\s*(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bS(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bE(\d{1,3})\b`),
	regexp.MustCompile(`第(\d{1,3})話`),
	regexp.MustCompile(`(\d{1,3})(화|회|기|부)`),
	regexp.MustCompile(`(?i)\bPart\s*(\d{1,2})\b`),
	regexp.MustCompile(`\b(\d{6})\b`), // YYMMDD broadcast date
}

var technicalTagPattern = regexp.MustCompile(`(?i)\b(2160p|1080p|720p|480p|4k|uhd|hdr|bluray|blu-ray|bdrip|brrip|webrip|web-dl|webdl|web|hdtv|dvdrip|hdrip|x264|x265|h264|h265|hevc|avc|aac|ac3|dts|flac|mp3|atmos|remux|amzn|nf|hulu|dsnp|repack|proper|extended|unrated|multi|dual|internal)\b`)

var punctuationPattern = regexp.MustCompile(`[._~'"!?,]`)

var scriptTransitionPattern = regexp.MustCompile(`([\p{Hangul}\p{Han}\p{Katakana}\p{Hiragana}])([A-Za-z0-9])|([A-Za-z0-9])([\p{Hangul}\p{Han}\p{Katakana}\p{Hiragana}])`)

// Clean reduces raw to a canonical title plus optional year.
func Clean(raw string) Result {
	nfc := norm.NFC.String(raw)

	if isForbidden(stripExt(nfc)) {
		return Result{}
	}

	hint := extractTMDbHint(nfc)
	working := tmdbHintPattern.ReplaceAllString(nfc, "")

	working = stripExt(working)
	working = channelPrefixPattern.ReplaceAllString(working, "")

	year := extractYear(working)
	working = stripYear(working, year)

	working = truncateAtEpisodeMarker(working)
	working = truncateAtTechnicalTag(working)
	working = scriptTransitionPattern.ReplaceAllString(working, "$1$3 $2$4")
	working = stripJunk(working)

	if len([]rune(working)) < 1 {
		working = fallbackFromBrackets(nfc)
	}

	return Result{
		Title:    titleCaser.String(working),
		Year:     year,
		TMDbHint: hint,
	}
}

func isForbidden(s string) bool {
	return forbiddenPattern.MatchString(s)
}

func stripExt(s string) string {
	return videoExtPattern.ReplaceAllString(s, "")
}

func extractTMDbHint(s string) *int {
	m := tmdbHintPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

func extractYear(s string) *int {
	if m := yearParenPattern.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &n
		}
	}
	if m := yearBarePattern.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1900 && n <= 2100 {
			return &n
		}
	}
	return nil
}

// stripYear blanks both the parenthesized year form and, when extractYear
// already found a bare one, that exact bare form too - leaving its
// surrounding separators in place so the tokens on either side don't glue
// together once punctuation is later collapsed.
func stripYear(s string, year *int) string {
	s = yearParenPattern.ReplaceAllString(s, " ")
	if year != nil {
		bare := regexp.MustCompile(`(^|[^\d])` + strconv.Itoa(*year) + `([^\d]|$)`)
		s = bare.ReplaceAllString(s, "$1 $2")
	}
	return s
}

// truncateAtEpisodeMarker finds the leftmost episode marker match across all
// patterns and truncates at it, preferring the prefix when it is long
// enough and not itself forbidden, otherwise using the suffix.
func truncateAtEpisodeMarker(s string) string {
	bestIdx := -1
	bestEnd := -1
	for _, p := range episodeMarkerPatterns {
		loc := p.FindStringIndex(s)
		if loc == nil {
			continue
		}
		if bestIdx == -1 || loc[0] < bestIdx {
			bestIdx = loc[0]
			bestEnd = loc[1]
		}
	}
	if bestIdx == -1 {
		return s
	}

	prefix := strings.TrimSpace(s[:bestIdx])
	if len([]rune(prefix)) >= 2 && !isForbidden(prefix) {
		return prefix
	}
	suffix := strings.TrimSpace(s[bestEnd:])
	if len([]rune(suffix)) >= 2 {
		return suffix
	}
	return prefix
}

func truncateAtTechnicalTag(s string) string {
	loc := technicalTagPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	prefix := strings.TrimSpace(s[:loc[0]])
	if len([]rune(prefix)) >= 2 {
		return prefix
	}
	return s
}

func stripJunk(s string) string {
	s = bracketPattern.ReplaceAllString(s, " ")
	lower := strings.ToLower(s)
	for _, kw := range junkKeywords {
		idx := strings.Index(lower, kw)
		for idx >= 0 {
			s = s[:idx] + strings.Repeat(" ", len(kw)) + s[idx+len(kw):]
			lower = strings.ToLower(s)
			idx = strings.Index(lower, kw)
		}
	}
	s = punctuationPattern.ReplaceAllString(s, " ")
	s = leadingIndexPattern.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func fallbackFromBrackets(raw string) string {
	matches := bracketPattern.FindAllString(raw, -1)
	for _, m := range matches {
		inner := strings.Trim(m, "[](){}")
		inner = strings.TrimSpace(inner)
		if len([]rune(inner)) >= 2 && !technicalTagPattern.MatchString(inner) && !isForbidden(inner) {
			return inner
		}
	}
	return strings.TrimSpace(stripExt(raw))
}

// ExtractEpisodeNumbers derives (season, episode) from the episode markers
// Clean also recognizes, checked in a fixed priority order (SxxEyy, Korean
// episode suffixes, 第N話, Exx, Sxx, Season N) rather than leftmost-first;
// Part N and bare-date markers yield no numbers. Season defaults to 1;
// episode is nil when only a season-level marker is present.
func ExtractEpisodeNumbers(raw string) (season int, episode *int) {
	nfc := norm.NFC.String(raw)
	season = 1

	if m := regexp.MustCompile(`(?i)S(\d{1,2})E(\d{1,3})`).FindStringSubmatch(nfc); m != nil {
		s, _ := strconv.Atoi(m[1])
		e, _ := strconv.Atoi(m[2])
		if s > 0 {
			season = s
		}
		episode = &e
		return
	}
	if m := regexp.MustCompile(`(\d{1,3})(화|회|기|부)`).FindStringSubmatch(nfc); m != nil {
		e, _ := strconv.Atoi(m[1])
		episode = &e
		return
	}
	if m := regexp.MustCompile(`第(\d{1,3})話`).FindStringSubmatch(nfc); m != nil {
		e, _ := strconv.Atoi(m[1])
		episode = &e
		return
	}
	if m := regexp.MustCompile(`(?i)\bE(\d{1,3})\b`).FindStringSubmatch(nfc); m != nil {
		e, _ := strconv.Atoi(m[1])
		episode = &e
		return
	}
	if m := regexp.MustCompile(`(?i)\bS(\d{1,2})\b`).FindStringSubmatch(nfc); m != nil {
		s, _ := strconv.Atoi(m[1])
		if s > 0 {
			season = s
		}
		return
	}
	if m := regexp.MustCompile(`(?i)\bSeason\s*(\d{1,2})\b`).FindStringSubmatch(nfc); m != nil {
		s, _ := strconv.Atoi(m[1])
		if s > 0 {
			season = s
		}
		return
	}
	// bare YYMMDD broadcast date: season stays 1, episode stays nil -
	// the date itself is stripped by truncateAtEpisodeMarker, not turned
	// into an episode number.
	return
}
