package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"droidenv/internal/execx"
	"droidenv/internal/platform"
)

type fakeRunner struct {
	err   error
	calls []string
	dirs  []string
}

func (f *fakeRunner) Run(_ context.Context, command string, args []string, opts execx.RunOptions) (execx.RunResult, error) {
	f.calls = append(f.calls, strings.Join(append([]string{command}, args...), " "))
	f.dirs = append(f.dirs, opts.Dir)
	return execx.RunResult{}, f.err
}

type fakeFetcher struct {
	urls []string
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, url, dest string) error {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("payload"), 0o644)
}

func javaProject() JavaProject {
	return JavaProject{
		Name:          "MyJavaApp",
		Package:       "com.example.myjavaapp",
		CompileSDK:    31,
		MinSDK:        21,
		PluginVersion: "7.0.4",
		GradleVersion: "8.4",
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestJavaProjectRunsGradleWrapper(t *testing.T) {
	root := t.TempDir()
	gradle := filepath.Join(root, "gradle", "bin", "gradle")
	if err := os.MkdirAll(filepath.Dir(gradle), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(gradle, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{}
	s := &Scaffolder{Root: root, Profile: platform.Resolve("linux"), GradleExe: gradle, Runner: runner}
	result, err := s.Java(context.Background(), javaProject())
	if err != nil {
		t.Fatalf("Java: %v", err)
	}

	wantFiles := []string{
		"build.gradle",
		"settings.gradle",
		"app/build.gradle",
		"app/src/main/AndroidManifest.xml",
		"app/src/main/java/com/example/myjavaapp/MainActivity.java",
		"app/src/main/res/layout/activity_main.xml",
		"app/src/main/res/values/strings.xml",
	}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if result.Wrapper != WrapperGradle {
		t.Fatalf("wrapper = %q", result.Wrapper)
	}
	if len(runner.calls) != 1 || runner.calls[0] != gradle+" wrapper" || runner.dirs[0] != result.Dir {
		t.Fatalf("unexpected wrapper invocation %v in %v", runner.calls, runner.dirs)
	}

	settings := readFile(t, filepath.Join(result.Dir, "settings.gradle"))
	if !strings.Contains(settings, `rootProject.name = "MyJavaApp"`) {
		t.Fatalf("settings.gradle = %q", settings)
	}
	appBuild := readFile(t, filepath.Join(result.Dir, "app", "build.gradle"))
	for _, want := range []string{"compileSdkVersion 31", "minSdkVersion 21", `applicationId "com.example.myjavaapp"`} {
		if !strings.Contains(appBuild, want) {
			t.Fatalf("app/build.gradle missing %q", want)
		}
	}
	activity := readFile(t, filepath.Join(result.Dir, "app", "src", "main", "java", "com", "example", "myjavaapp", "MainActivity.java"))
	if !strings.HasPrefix(activity, "package com.example.myjavaapp;") {
		t.Fatalf("MainActivity.java = %q", activity)
	}
}

func TestJavaProjectWrapperFailureIsNotFatal(t *testing.T) {
	root := t.TempDir()
	gradle := filepath.Join(root, "gradle")
	if err := os.WriteFile(gradle, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := &Scaffolder{Root: root, Profile: platform.Resolve("linux"), GradleExe: gradle, Runner: &fakeRunner{err: errors.New("exit status 1")}}

	result, err := s.Java(context.Background(), javaProject())
	if err != nil {
		t.Fatalf("Java: %v", err)
	}
	if result.Wrapper != WrapperNone || len(result.Notes) != 1 {
		t.Fatalf("expected a noted wrapper failure, got %+v", result)
	}
}

func TestJavaProjectFallsBackToDownloadedWrapper(t *testing.T) {
	root := t.TempDir()
	fetcher := &fakeFetcher{}
	s := &Scaffolder{Root: root, Profile: platform.Resolve("linux"), Fetcher: fetcher}

	result, err := s.Java(context.Background(), javaProject())
	if err != nil {
		t.Fatalf("Java: %v", err)
	}
	if result.Wrapper != WrapperFallback {
		t.Fatalf("wrapper = %q", result.Wrapper)
	}
	wantURLs := []string{
		"https://raw.githubusercontent.com/gradle/gradle/v8.4.0/gradle/wrapper/gradle-wrapper.jar",
		"https://raw.githubusercontent.com/gradle/gradle/v8.4.0/gradle/wrapper/gradle-wrapper.properties",
	}
	if diff := cmp.Diff(wantURLs, fetcher.urls); diff != "" {
		t.Fatalf("urls mismatch (-want +got):\n%s", diff)
	}

	gradlew := filepath.Join(result.Dir, "gradlew")
	if got := readFile(t, gradlew); !strings.Contains(got, "gradle-wrapper.jar") {
		t.Fatalf("gradlew = %q", got)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(gradlew)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Fatalf("gradlew mode = %v", info.Mode().Perm())
		}
	}
	if got := readFile(t, filepath.Join(result.Dir, "gradlew.bat")); !strings.HasPrefix(got, "@echo off") {
		t.Fatalf("gradlew.bat = %q", got)
	}
}

func TestJavaProjectFallbackFailureIsNoted(t *testing.T) {
	s := &Scaffolder{Root: t.TempDir(), Profile: platform.Resolve("linux"), Fetcher: &fakeFetcher{err: errors.New("offline")}}
	result, err := s.Java(context.Background(), javaProject())
	if err != nil {
		t.Fatalf("Java: %v", err)
	}
	if result.Wrapper != WrapperNone || !strings.Contains(result.Notes[0], "offline") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestJavaProjectRejectsBadInput(t *testing.T) {
	s := &Scaffolder{Root: t.TempDir()}
	p := javaProject()
	p.Package = "nodots"
	if _, err := s.Java(context.Background(), p); err == nil {
		t.Fatal("expected package error")
	}
	p = javaProject()
	p.Name = "../escape"
	if _, err := s.Java(context.Background(), p); err == nil {
		t.Fatal("expected name error")
	}
}

func TestKivyProject(t *testing.T) {
	s := &Scaffolder{Root: t.TempDir()}
	result, err := s.Kivy(KivyProject{Name: "MyKivyApp", API: 31, MinAPI: 21, NDK: "25.2.9519653"})
	if err != nil {
		t.Fatalf("Kivy: %v", err)
	}
	if diff := cmp.Diff([]string{"main.py", "buildozer.spec"}, result.Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	spec := readFile(t, filepath.Join(result.Dir, "buildozer.spec"))
	for _, want := range []string{"title = MyKivyApp", "package.name = mykivyapp", "android.api = 31", "android.minapi = 21", "android.ndk = 25.2.9519653"} {
		if !strings.Contains(spec, want) {
			t.Fatalf("buildozer.spec missing %q:\n%s", want, spec)
		}
	}

	again, err := s.Kivy(KivyProject{Name: "MyKivyApp", API: 31, MinAPI: 21})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(readFile(t, filepath.Join(again.Dir, "buildozer.spec")), "android.ndk") {
		t.Fatal("ndk line should be omitted when unknown")
	}
}
