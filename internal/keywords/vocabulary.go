package keywords

// vocabulary is the curated content-provenance domain vocabulary matched
// against chat messages. Terms are lowercase; a term is present when the
// message contains it as a substring.
var vocabulary = []string{
	"manifest",
	"claim",
	"assertion",
	"signature",
	"signing",
	"certificate",
	"provenance",
	"credential",
	"ingredient",
	"hash",
	"thumbnail",
	"validation",
	"verify",
	"trust",
	"security",
	"metadata",
	"watermark",
	"tamper",
	"redaction",
	"binding",
	"timestamp",
	"sdk",
	"c2pa",
}

// triggerPhrases maps multi-word phrases to the keyword sets they imply.
// A phrase contained in the message contributes every associated keyword.
var triggerPhrases = map[string][]string{
	"content credentials": {"manifest", "claim", "provenance"},
	"content provenance":  {"provenance", "manifest", "trust"},
	"how do i sign":       {"signing", "signature", "certificate"},
	"edit history":        {"ingredient", "assertion", "provenance"},
	"is this real":        {"validation", "verify", "trust"},
	"has it been edited":  {"tamper", "validation", "ingredient"},
	"who made this":       {"claim", "provenance", "credential"},
	"soft binding":        {"watermark", "binding"},
	"hard binding":        {"hash", "binding"},
}
