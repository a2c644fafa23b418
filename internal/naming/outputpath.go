package naming

import "fmt"

// SplitName is the file the splitter writes for volume index:
// a four-digit zero-padded index plus ext ("0007.nii.gz"). Indices above
// 9999 are not truncated.
func SplitName(index int, ext string) string {
	return fmt.Sprintf("%04d.%s", index, ext)
}

// OutputName is the destination name for a label: "<%04d index>_<slug>.<ext>".
func OutputName(index int, text, ext string) string {
	return outputName(index, Slugify(text), ext)
}

func outputName(index int, slug, ext string) string {
	return fmt.Sprintf("%04d_%s.%s", index, slug, ext)
}
