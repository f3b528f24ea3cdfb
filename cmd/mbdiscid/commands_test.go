package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mbdiscid/internal/cdrom"
	"mbdiscid/internal/discid"
	"mbdiscid/internal/testsupport"
	"mbdiscid/internal/toc"
	"mbdiscid/internal/watch"
)

func referenceTOC(t *testing.T) toc.TOC {
	t.Helper()
	disc, err := toc.New(1, 10, 206535, []int{150, 18901, 39738, 59557, 79152, 100126, 124833, 147278, 166336, 182560})
	if err != nil {
		t.Fatalf("toc.New: %v", err)
	}
	return disc
}

func TestProvidersCommand(t *testing.T) {
	isolateConfig(t)
	missing := &fakeProvider{
		name:     "libdiscid",
		availErr: &discid.DependencyError{Name: "libdiscid", Detail: "built without libdiscid", Hints: []string{"rebuild with -tags libdiscid"}},
	}
	native := &fakeProvider{name: "linux"}
	env := testEnvironment(nil, missing, native)

	out, stderr, code := runCLI(t, env, "providers")
	if code != 0 {
		t.Fatalf("providers failed: %s", stderr)
	}
	requireContains(t, out, "libdiscid")
	requireContains(t, out, "built without libdiscid")
	requireContains(t, out, "Selected: linux")

	out, _, code = runCLI(t, env, "providers", "--json")
	if code != 0 {
		t.Fatalf("providers --json failed")
	}
	var report providersReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if report.Configured != "auto" || report.Selected != "linux" {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Providers) != 2 || report.Providers[0].Available || !report.Providers[1].Available {
		t.Fatalf("unexpected statuses %+v", report.Providers)
	}
}

func TestProvidersCommandNoneAvailable(t *testing.T) {
	isolateConfig(t)
	missing := &fakeProvider{name: "linux", availErr: errors.New("unsupported")}

	out, _, code := runCLI(t, testEnvironment(nil, missing), "providers")
	if code != 0 {
		t.Fatalf("providers should succeed even when nothing is available")
	}
	requireContains(t, out, "Selected: none")
}

func TestProvidersCommandReportsDrive(t *testing.T) {
	isolateConfig(t)
	env := testEnvironment(nil, &fakeProvider{name: "linux"})
	var probed string
	env.driveStatus = func(device string) (cdrom.DriveStatus, error) {
		probed = device
		return cdrom.DriveStatusTrayOpen, nil
	}

	out, stderr, code := runCLI(t, env, "providers", "/dev/sr0")
	if code != 0 {
		t.Fatalf("providers failed: %s", stderr)
	}
	if probed != "/dev/sr0" {
		t.Fatalf("expected drive status for /dev/sr0, got %q", probed)
	}
	requireContains(t, out, "Drive /dev/sr0: drive tray is open")

	env.driveStatus = func(string) (cdrom.DriveStatus, error) { return cdrom.DriveStatusDiscOK, nil }
	out, _, code = runCLI(t, env, "providers", "--json", "/dev/sr0")
	if code != 0 {
		t.Fatal("providers --json failed")
	}
	var report providersReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if report.Drive == nil || !report.Drive.Ready || report.Drive.Status != "disc present" {
		t.Fatalf("unexpected drive report %+v", report.Drive)
	}

	env.driveStatus = func(string) (cdrom.DriveStatus, error) {
		return cdrom.DriveStatusNoInfo, &cdrom.DeviceError{Device: "/dev/sr9", Op: "open", Err: errors.New("no such file or directory")}
	}
	out, _, code = runCLI(t, env, "providers", "/dev/sr9")
	if code != 0 {
		t.Fatal("drive errors should not fail the providers listing")
	}
	requireContains(t, out, "Drive /dev/sr9: open /dev/sr9: no such file or directory")
}

func TestProvidersCommandListsExternalTools(t *testing.T) {
	isolateConfig(t)
	binDir := testsupport.StubOnPath(t, "cd-discid")
	env := testEnvironment(nil, discid.NewCommandProvider(""))

	out, stderr, code := runCLI(t, env, "providers", "--json")
	if code != 0 {
		t.Fatalf("providers failed: %s", stderr)
	}
	var report providersReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(report.Binaries) != 1 {
		t.Fatalf("expected one external tool, got %+v", report.Binaries)
	}
	bin := report.Binaries[0]
	if bin.Name != "cd-discid" || !bin.Available || bin.Command != filepath.Join(binDir, "cd-discid") {
		t.Fatalf("unexpected tool status %+v", bin)
	}

	t.Setenv("PATH", t.TempDir())
	out, _, code = runCLI(t, env, "providers")
	if code != 0 {
		t.Fatal("providers failed without cd-discid")
	}
	requireContains(t, out, "Tool")
	requireContains(t, out, "apt install cd-discid")
}

func TestTOCCommandFromString(t *testing.T) {
	isolateConfig(t)
	native := &fakeTOCSource{err: errors.New("drive must not be read")}
	env := testEnvironment(native)

	out, stderr, code := runCLI(t, env, "toc", "--from", referenceTOC(t).String())
	if code != 0 {
		t.Fatalf("toc --from failed: %s", stderr)
	}
	requireContains(t, out, "Disc ID:    Wn8eRBtfLDfM0qjYPdxrz.Zjs_U-")

	_, stderr, code = runCLI(t, env, "toc", "--from", "1 2 3")
	if code != 1 {
		t.Fatalf("expected invalid TOC to fail, got %d", code)
	}
	requireContains(t, stderr, "ERROR: invalid toc")

	_, _, code = runCLI(t, env, "toc", "--from", referenceTOC(t).String(), "/dev/sr0")
	if code != 1 {
		t.Fatal("expected --from with a device to be rejected")
	}
}

func TestTOCCommand(t *testing.T) {
	isolateConfig(t)
	env := testEnvironment(&fakeTOCSource{disc: referenceTOC(t)})

	out, stderr, code := runCLI(t, env, "toc", "/dev/sr0")
	if code != 0 {
		t.Fatalf("toc failed: %s", stderr)
	}
	requireContains(t, out, "Disc ID:    Wn8eRBtfLDfM0qjYPdxrz.Zjs_U-")
	requireContains(t, out, "FreeDB ID:  830abf0a")
	requireContains(t, out, "Tracks:     1-10 (10)")
	requireContains(t, out, "Length:     45:51")
	requireContains(t, out, "TOC:        1 10 206535 150 18901")
	requireContains(t, out, "https://musicbrainz.org/cdtoc/attach?id=Wn8eRBtfLDfM0qjYPdxrz.Zjs_U-")

	out, _, code = runCLI(t, env, "toc", "--json", "/dev/sr0")
	if code != 0 {
		t.Fatal("toc --json failed")
	}
	var report tocReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if report.DiscID != "Wn8eRBtfLDfM0qjYPdxrz.Zjs_U-" || report.TOC.Tracks() != 10 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestTOCCommandErrors(t *testing.T) {
	isolateConfig(t)

	_, stderr, code := runCLI(t, testEnvironment(&fakeTOCSource{
		err: &discid.DiscError{Message: "drive tray is open"},
	}), "toc", "/dev/sr0")
	if code != 1 || stderr != "ERROR: drive tray is open\n" {
		t.Fatalf("unexpected result code=%d stderr=%q", code, stderr)
	}

	_, stderr, code = runCLI(t, testEnvironment(&fakeTOCSource{
		availErr: &discid.DependencyError{Name: "linux", Detail: "native CD-ROM access requires Linux"},
	}), "toc", "/dev/sr0")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	requireContains(t, stderr, "ERROR: linux not available")

	_, stderr, code = runCLI(t, testEnvironment(nil), "toc")
	if code != 1 {
		t.Fatalf("expected exit 1 without device, got %d", code)
	}
	requireContains(t, stderr, "ERROR: ")
}

func TestFormatSectors(t *testing.T) {
	if got := formatSectors(75 * 61); got != "1:01" {
		t.Fatalf("formatSectors = %q", got)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := isolateConfig(t)

	out, stderr, code := runCLI(t, testEnvironment(nil), "config", "validate")
	if code != 0 {
		t.Fatalf("config validate: %s", stderr)
	}
	requireContains(t, out, "Config file did not exist; defaults were used")
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(base, "conf", "config.toml")
	out, stderr, code = runCLI(t, testEnvironment(nil), "config", "init", "--path", target)
	if code != 0 {
		t.Fatalf("config init: %s", stderr)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, stderr, code = runCLI(t, testEnvironment(nil), "config", "init", "--path", target)
	if code != 1 {
		t.Fatal("expected init to refuse overwriting")
	}
	requireContains(t, stderr, "already exists")

	out, stderr, code = runCLI(t, testEnvironment(nil), "--config", target, "config", "validate")
	if code != 0 {
		t.Fatalf("validate sample: %s", stderr)
	}
	requireContains(t, out, "Config path: "+target)
	if strings.Contains(out, "defaults were used") {
		t.Fatalf("expected sample file to be read: %s", out)
	}
}

func TestWatchRefusesSecondWatcher(t *testing.T) {
	base := isolateConfig(t)
	lockDir := filepath.Join(base, "mbdiscid")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	held, err := watch.Lock(lockDir, "/dev/sr0")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer func() { _ = held.Unlock() }()

	provider := &fakeProvider{name: "linux", id: "x"}
	stdout, stderr, code := runCLI(t, testEnvironment(nil, provider), "watch", "/dev/sr0")
	if code != 1 || stdout != "" {
		t.Fatalf("unexpected result code=%d stdout=%q", code, stdout)
	}
	requireContains(t, stderr, "already being watched")
	if len(provider.devices) != 0 {
		t.Fatal("provider should not be read")
	}
}
