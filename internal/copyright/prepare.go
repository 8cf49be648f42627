package copyright

import (
	"regexp"
	"strings"
)

var (
	printfFormatRe     = regexp.MustCompile(` [#%][a-zA-Z] `)
	punctuationRe      = regexp.MustCompile("[*#\"%\\[\\]{}`]+")
	repeatedQuotesRe   = regexp.MustCompile(`'{2,}`)
	weirdCommentRe     = regexp.MustCompile(`(?i)^(@?rem|dnl)\s+`)
	manCommentRe       = regexp.MustCompile(`\."`)
	htmlTagRe          = regexp.MustCompile(`<[^>@]+>`)
	malformedHTMLTagRe = regexp.MustCompile(`(?i)<\s*/?\s*(?:a|abbr|address|area|article|aside|audio|b|base|bdi|bdo|blockquote|body|br|button|canvas|caption|cite|code|col|colgroup|data|datalist|dd|del|details|dfn|dialog|div|dl|dt|em|embed|fieldset|figcaption|figure|font|footer|form|h[1-6]|head|header|hgroup|hr|html|i|iframe|img|input|ins|kbd|label|legend|li|link|main|map|mark|menu|meta|meter|nav|noscript|object|ol|optgroup|option|output|p|param|picture|pre|progress|q|rp|rt|ruby|s|samp|script|section|select|slot|small|source|span|strong|style|sub|summary|sup|table|tbody|td|template|textarea|tfoot|th|thead|time|title|tr|track|u|ul|var|video|wbr)\b\s*/?\s*>?`)
	htmlAttrRe         = regexp.MustCompile(`(?i)\b(?:href|class|width|style|xmlns|xml|lang|type|rel|src|alt|id|name|action|method|target|value|placeholder)=[^\s]*`)
	mailtoRe           = regexp.MustCompile(`mailto:\S+`)
	cssMeasurementRe   = regexp.MustCompile(`\b\d+pt\b`)
)

// replaceSeq applies each old/new pair in order over the whole string.
// Later pairs see the output of earlier ones.
func replaceSeq(s string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		s = strings.ReplaceAll(s, pairs[i], pairs[i+1])
	}
	return s
}

const copySign = " (c) "

// keepTag reports whether a matched markup tag must survive stripping.
func keepTag(tag string) bool {
	lower := strings.ToLower(tag)
	return strings.Contains(lower, "copyright") ||
		strings.Contains(lower, "author") ||
		strings.Contains(lower, "legal")
}

func stripTags(s string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(s, func(m string) string {
		if keepTag(m) {
			return m
		}
		return " "
	})
}

// PrepareLine normalizes a raw line before tokenization: comment markers are
// dropped, every spelling of the copyright sign becomes "(c)", entities are
// decoded, markup is removed and whitespace is collapsed.
func PrepareLine(line string) string {
	s := replaceSeq(line,
		`\\ co`, " ",
		`\ co`, " ",
		"(co ", " ",
	)
	s = printfFormatRe.ReplaceAllString(s, " ")
	s = weirdCommentRe.ReplaceAllString(s, " ")
	s = manCommentRe.ReplaceAllString(s, " ")
	s = replaceSeq(s, "/*", " ", "*/", " ")

	// Sign variants go before '#' and '%' removal so numeric entities survive.
	s = replaceSeq(s,
		"|copy|", copySign,
		"|", " ",
		`"Copyright`, `" Copyright`,
		"( C)", copySign,
		"(C)", copySign,
		"(c)", copySign,
		"( © )", copySign,
		"(©)", copySign,
		"(© )", copySign,
		"( ©)", copySign,
		"©", copySign,
		"&copy;", copySign,
		"&copy", copySign,
		"&#169;", copySign,
		"&#xa9;", copySign,
		"&#xA9;", copySign,
		"&#Xa9;", copySign,
		"&#XA9;", copySign,
		"u00A9", copySign,
		"u00a9", copySign,
		`\XA9`, copySign,
		`\A9`, copySign,
		`\a9`, copySign,
		"<A9>", copySign,
		"XA9;", copySign,
		"Xa9;", copySign,
		"xA9;", copySign,
		"xa9;", copySign,
		"Â", "",
		`\xc2`, "",
	)

	s = replaceSeq(s,
		"–", "-",
		"&#13;&#10;", " ",
		"&#13;", " ",
		"&#10;", " ",
		"&ensp;", " ",
		"&emsp;", " ",
		"&thinsp;", " ",
		"&quot;", `"`,
		"&#34;", `"`,
		"&amp;", "&",
		"&#38;", "&",
		"&gt;", ">",
		"&gt", ">",
		"&#62;", ">",
		"&lt;", "<",
		"&lt", "<",
		"&#60;", "<",
	)

	s = replaceSeq(s, "*", " ", "#", " ", "%", " ")
	s = strings.Trim(s, ` \/*#%;`)

	s = replaceSeq(s,
		"`", "'",
		`"`, "'",
		" u'", " '",
		"§", " ",
		"<http", " http",
		"<insert ", " ",
		"year>", " ",
		"<year>", " ",
		"<name>", " ",
	)
	s = repeatedQuotesRe.ReplaceAllString(s, "'")

	s = replaceSeq(s,
		`\t`, " ",
		`\n`, " ",
		`\r`, " ",
		`\0`, " ",
		`\`, " ",
		"('", " ",
		"')", " ",
		"],", " ",
	)
	s = replaceSeq(s, "</s>", "", "<s>", "", "<s/>", "")

	s = stripTags(s, htmlTagRe)
	s = stripTags(s, malformedHTMLTagRe)
	s = htmlAttrRe.ReplaceAllString(s, " ")
	s = mailtoRe.ReplaceAllString(s, " ")
	s = cssMeasurementRe.ReplaceAllString(s, " ")
	s = punctuationRe.ReplaceAllString(s, " ")

	s = strings.ReplaceAll(s, " , ", ", ")
	s = replaceSeq(s, ">", "> ", "<", " <")
	s = strings.Trim(s, " *")
	return strings.Join(strings.Fields(s), " ")
}
