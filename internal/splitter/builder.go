package splitter

import "github.com/backmassage/roisplit/internal/config"

// Build constructs the splitter argument slice. args[0] is the binary.
// prefix is the output path prefix; split files are named prefix+"0000.<ext>".
func Build(cfg *config.Config, atlasPath, prefix string) []string {
	return []string{cfg.Splitter, atlasPath, prefix}
}
