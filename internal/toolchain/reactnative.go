package toolchain

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/project"
)

// React Native platforms.
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
)

// ReactNative drives the react-native CLI through npx.
type ReactNative struct {
	base
}

func (r *ReactNative) Name() string            { return NameReactNative }
func (r *ReactNative) DefaultPlatform() string { return PlatformIOS }
func (r *ReactNative) Binaries() []string      { return []string{"node", "npx"} }

// rnMode returns the --mode value: iOS uses configuration names
// (Debug/Release), Android uses variant names (debug/release).
func rnMode(platform, mode string) string {
	release := IsRelease(mode)
	switch {
	case platform == PlatformIOS && release:
		return "Release"
	case platform == PlatformIOS:
		return "Debug"
	case release:
		return ModeRelease
	default:
		return ModeDebug
	}
}

func (r *ReactNative) Build(ctx context.Context, dir, mode, platform string) project.Result {
	var sub string
	switch platform {
	case PlatformIOS:
		sub = "build-ios"
	case PlatformAndroid:
		sub = "build-android"
	default:
		return unsupportedPlatform(NameReactNative, platform)
	}
	label := "Build (" + platform + ", " + modeLabel(mode) + ")"
	return r.step(ctx, dir, label, "npx", "react-native", sub, "--mode", rnMode(platform, mode))
}

// Run installs and launches the app. device selects a simulator on iOS and
// a device id on Android.
func (r *ReactNative) Run(ctx context.Context, dir, platform, device, mode string) project.Result {
	var args []string
	switch platform {
	case PlatformIOS:
		args = []string{"react-native", "run-ios", "--mode", rnMode(platform, mode)}
		if device != "" {
			args = append(args, "--simulator", device)
		}
	case PlatformAndroid:
		args = []string{"react-native", "run-android", "--mode", rnMode(platform, mode)}
		if device != "" {
			args = append(args, "--deviceId", device)
		}
	default:
		return unsupportedPlatform(NameReactNative, platform)
	}
	return r.step(ctx, dir, "Run ("+platform+")", "npx", args...)
}

func (r *ReactNative) Reset(_ context.Context, dir string) project.Result {
	return r.removeAll(dir,
		"node_modules",
		filepath.Join("ios", "Pods"),
		filepath.Join("ios", "build"),
		filepath.Join("android", ".gradle"),
		filepath.Join("android", "build"),
		filepath.Join("android", "app", "build"),
	)
}

// PodInstall runs pod install in the ios directory.
func (r *ReactNative) PodInstall(ctx context.Context, dir string) project.Result {
	iosDir := filepath.Join(dir, PlatformIOS)
	if ok, _ := afero.DirExists(r.fs, iosDir); !ok {
		return project.Fail("No ios directory found", iosDir)
	}
	return r.step(ctx, iosDir, "Pod install", "pod", "install")
}
