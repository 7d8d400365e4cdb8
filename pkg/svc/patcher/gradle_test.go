package patcher_test

import (
	"strings"
	"testing"

	"github.com/devantler-tech/flutterkit/pkg/svc/patcher"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateBuildScript = `plugins {
    id("com.android.application")
    id("kotlin-android")
    id("dev.flutter.flutter-gradle-plugin")
}

android {
    namespace = "com.example.app"
    compileSdk = flutter.compileSdkVersion

    compileOptions {
        sourceCompatibility = JavaVersion.VERSION_11
        targetCompatibility = JavaVersion.VERSION_11
    }

    defaultConfig {
        applicationId = "com.example.app"
    }

    buildTypes {
        release {
            // Signed with the debug keys so { release } builds run locally.
            signingConfig = signingConfigs.getByName("debug")
        }
    }
}

flutter {
    source = "../.."
}
`

func TestPatchBuildScript(t *testing.T) {
	t.Parallel()

	patched, err := patcher.PatchBuildScript(templateBuildScript)
	require.NoError(t, err)

	snaps.MatchSnapshot(t, patched)
}

func TestPatchBuildScript_Idempotent(t *testing.T) {
	t.Parallel()

	once, err := patcher.PatchBuildScript(templateBuildScript)
	require.NoError(t, err)

	twice, err := patcher.PatchBuildScript(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "isCoreLibraryDesugaringEnabled"))
}

func TestPatchBuildScript_MissingAnchor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		anchor string
	}{
		{
			name:   "no compileOptions",
			script: strings.Replace(templateBuildScript, "compileOptions", "kotlinOptions", 1),
			anchor: "compileOptions",
		},
		{
			name:   "no buildTypes",
			script: strings.Replace(templateBuildScript, "buildTypes", "productFlavors", 1),
			anchor: "buildTypes",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			out, err := patcher.PatchBuildScript(test.script)

			require.ErrorIs(t, err, patcher.ErrAnchorNotFound)
			assert.Contains(t, err.Error(), test.anchor)
			assert.Equal(t, test.script, out, "a failed patch leaves the input unchanged")
		})
	}
}

func TestReplaceBlock_IgnoresBracesInLiteralsAndComments(t *testing.T) {
	t.Parallel()

	src := "a {\n    b = \"}\"\n    /* } */\n    // }\n    c { d }\n}\ntail\n"

	out, err := patcher.Apply(src, patcher.ReplaceBlock{Block: "a", Replacement: "a {\n    x\n}"})
	require.NoError(t, err)

	assert.Equal(t, "a {\n    x\n}\ntail\n", out)
}

func TestReplaceBlock_Unbalanced(t *testing.T) {
	t.Parallel()

	_, err := patcher.Apply("a {\n  b {\n}\n", patcher.ReplaceBlock{Block: "a", Replacement: "a {}"})

	require.ErrorIs(t, err, patcher.ErrUnbalancedBlock)
}

func TestInsertFirstLine_NestedIndent(t *testing.T) {
	t.Parallel()

	src := "android {\n    compileOptions {\n        x = 1\n    }\n}\n"

	out, err := patcher.Apply(src, patcher.InsertFirstLine{Block: "compileOptions", Line: "y = 2"})
	require.NoError(t, err)

	assert.Equal(t, "android {\n    compileOptions {\n        y = 2\n        x = 1\n    }\n}\n", out)
}
