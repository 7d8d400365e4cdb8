package provisioner

import (
	"regexp"

	"github.com/devantler-tech/flutterkit/pkg/svc/patcher"
	"github.com/devantler-tech/flutterkit/pkg/toolchain"
)

const (
	manifestFile   = "pubspec.yaml"
	gitDir         = ".git"
	hooksDir       = ".githooks"
	snapshotCommit = "chore: snapshot before flavorizr"
)

// Files the flavor generator overwrites and step 9 restores from the snapshot.
var clobberedFiles = []string{"lib/main.dart", "lib/app.dart"}

var manifestNamePattern = regexp.MustCompile(`(?m)^name:.*$`)

// step is one numbered pipeline stage.
type step struct {
	title string
	// requires is a project-relative file that must exist before the step starts.
	requires string
	missing  error
	actions  []action
	done     string
}

// StepCount is the number of steps in a full run.
const StepCount = 11

//nolint:funlen // the step table is read top to bottom
func provisioningSteps() []step {
	steps := []step{
		{
			title: "Installing project renamer",
			done:  "rename activated",
			actions: []action{
				command{tool: toolchain.Dart, args: fixedArgs("pub", "global", "activate", "rename"), inParent: true},
			},
		},
		{
			title: "Cloning and renaming template",
			done:  "template cloned and renamed",
			actions: []action{
				command{
					tool: toolchain.Git,
					args: func(r *run) []string {
						return []string{"clone", "--depth", "1", r.req.TemplateURL, r.project}
					},
					inParent: true,
				},
				removeAll{path: gitDir},
				editFile{path: manifestFile, missing: ErrManifestMissing, edit: setManifestName},
				command{tool: toolchain.Dart, args: renameArgs("setAppName", func(r *run) string {
					return patcher.ToDisplayName(r.req.Name)
				})},
				command{tool: toolchain.Dart, args: renameArgs("setBundleId", func(r *run) string {
					return patcher.BundleID(r.req.Name, r.req.Org)
				})},
			},
		},
		{
			title: "Initializing git repository",
			done:  "repository ready",
			actions: []action{
				command{tool: toolchain.Git, args: fixedArgs("init"), onlyIfAbsent: gitDir},
				command{
					tool:          toolchain.Git,
					args:          fixedArgs("config", "core.hooksPath", hooksDir),
					onlyIfPresent: hooksDir,
				},
			},
		},
		{
			title:   "Fetching dependencies",
			done:    "dependencies fetched",
			actions: []action{command{tool: toolchain.Flutter, args: fixedArgs("pub", "get")}},
		},
		{
			title:   "Generating localizations",
			done:    "localizations generated",
			actions: []action{command{tool: toolchain.Flutter, args: fixedArgs("gen-l10n")}},
		},
		{
			title:    "Rewriting flavor descriptor",
			requires: patcher.FlavorizrFile,
			missing:  ErrFlavorizrMissing,
			done:     "flavors dev, prod and uat defined",
			actions: []action{
				writeFile{path: patcher.FlavorizrFile, content: func(r *run) ([]byte, error) {
					return patcher.FlavorizrYAML(r.req.Name, r.req.Org)
				}},
			},
		},
		{
			title: "Snapshotting project",
			done:  "snapshot committed",
			actions: []action{
				command{tool: toolchain.Git, args: fixedArgs("add", "-A")},
				command{tool: toolchain.Git, args: fixedArgs("commit", "--no-verify", "-m", snapshotCommit)},
			},
		},
		{
			title: "Generating flavors",
			done:  "flavors generated",
			actions: []action{
				command{tool: toolchain.Dart, args: fixedArgs("run", "flutter_flavorizr"), interactive: true},
			},
		},
		{
			title: "Restoring entrypoints",
			done:  joinPaths(clobberedFiles...) + " restored",
			actions: []action{
				command{tool: toolchain.Git, args: fixedArgs(append([]string{"checkout", "HEAD", "--"}, clobberedFiles...)...)},
			},
		},
		{
			title:   "Writing environment configs",
			done:    "config files written",
			actions: configActions(),
		},
		{
			title:    "Patching Android build",
			requires: patcher.BuildScriptFile,
			missing:  ErrBuildScriptMissing,
			done:     "desugaring and minification enabled",
			actions: []action{
				editFile{path: patcher.BuildScriptFile, missing: ErrBuildScriptMissing, edit: patchBuildScript},
				writeFile{path: patcher.ProguardFile, content: func(*run) ([]byte, error) {
					return patcher.ProguardRules(), nil
				}},
			},
		},
	}

	return steps
}

func renameArgs(target string, value func(r *run) string) func(*run) []string {
	return func(r *run) []string {
		return []string{"pub", "global", "run", "rename", target, "--targets", "android,ios", "--value", value(r)}
	}
}

func configActions() []action {
	actions := make([]action, 0, len(patcher.Environments()))

	for _, env := range patcher.Environments() {
		actions = append(actions, writeFile{
			path: patcher.ConfigFilePath(env),
			content: func(*run) ([]byte, error) {
				return patcher.ConfigJSON(env)
			},
		})
	}

	return actions
}

func setManifestName(r *run, content string) (string, error) {
	line := "name: " + r.req.Name

	if loc := manifestNamePattern.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + line + content[loc[1]:], nil
	}

	return line + "\n" + content, nil
}

func patchBuildScript(_ *run, content string) (string, error) {
	return patcher.PatchBuildScript(content) //nolint:wrapcheck // wrapped with the path by editFile
}
