package inspector

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// ReportWidth is the column the description is wrapped at.
const ReportWidth = 80

// String renders the report as aligned "Label: value" lines.
func (r Report) String() string {
	var builder strings.Builder

	writeField(&builder, "Project", r.Name)
	writeField(&builder, "Path", r.Path)
	writeField(&builder, "Version", r.versionLine())
	writeField(&builder, "Description", r.Description)
	writeField(&builder, "Flutter", r.FlutterPin)
	writeField(&builder, "Config files", r.configLine())
	writeField(&builder, "Git branch", r.Branch)

	return strings.TrimRight(builder.String(), "\n")
}

func (r Report) versionLine() string {
	if r.SemVer == nil {
		if r.Version == Unknown {
			return Unknown
		}

		return r.Version + " (not semantic)"
	}

	parts := []string{
		fmt.Sprintf("major %d", r.SemVer.Major),
		fmt.Sprintf("minor %d", r.SemVer.Minor),
		fmt.Sprintf("patch %d", r.SemVer.Patch),
	}

	if r.SemVer.Prerelease != "" {
		parts = append(parts, "pre-release "+r.SemVer.Prerelease)
	}

	if r.SemVer.Build != "" {
		parts = append(parts, "build "+r.SemVer.Build)
	}

	return r.Version + " (" + strings.Join(parts, ", ") + ")"
}

func (r Report) configLine() string {
	if len(r.ConfigFiles) == 0 {
		return "0"
	}

	return fmt.Sprintf("%d (%s)", len(r.ConfigFiles), strings.Join(r.ConfigFiles, ", "))
}

const labelWidth = len("Config files: ")

func writeField(builder *strings.Builder, label, value string) {
	prefix := fmt.Sprintf("%-*s", labelWidth, label+":")
	wrapped := wordwrap.WrapString(value, uint(ReportWidth-labelWidth))
	lines := strings.Split(wrapped, "\n")

	builder.WriteString(prefix + lines[0] + "\n")

	for _, line := range lines[1:] {
		builder.WriteString(strings.Repeat(" ", labelWidth) + line + "\n")
	}
}
