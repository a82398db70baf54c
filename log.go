package luceneql

import "github.com/rs/zerolog"

// classify logs, at Debug, the raw-participle-error-to-ParseError-kind
// mapping Parse performed, so a maintainer inspecting a shared log stream
// can see why a given input landed on a particular Kind. It is a no-op
// under the default zerolog.Nop() logger.
func classify(log zerolog.Logger, pe *ParseError) {
	log.Debug().
		Stringer("id", pe.ID).
		Str("kind", pe.Kind.String()).
		Int("offset", pe.Offset).
		Str("construct", pe.Construct).
		Msg("classified parse failure")
}
