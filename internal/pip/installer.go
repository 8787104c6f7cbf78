// Package pip wraps the host environment's package manager. All
// invocations go through "<python> -m pip" so that installed packages land
// in the same environment the sub-applications are launched with.
package pip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/blackwell-systems/pylaunch/internal/reqs"
)

// Runner invokes pip as a synchronous subprocess. Calls block until the
// subprocess exits; no timeout is enforced.
type Runner struct {
	Python string // interpreter executable, e.g. "python3" or an absolute path
}

// NewRunner creates a Runner for the given interpreter. An empty string
// selects the default interpreter from PATH.
func NewRunner(python string) *Runner {
	if python == "" {
		python = DefaultPython()
	}
	return &Runner{Python: python}
}

// DefaultPython resolves the interpreter to use when none is configured:
// python3 from PATH, falling back to python.
func DefaultPython() string {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return "python3"
}

// InstallFromFile runs pip install -r against the given requirements file.
// On a non-zero exit the returned error carries pip's captured error
// output verbatim; the string return is pip's stdout on success.
func (r *Runner) InstallFromFile(path string) (string, error) {
	cmd := exec.Command(r.Python, "-m", "pip", "install", "-r", path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg == "" {
			return "", fmt.Errorf("pip install -r %s failed: %w", path, err)
		}
		return "", fmt.Errorf("%s", msg)
	}

	return stdout.String(), nil
}

// ListInstalled returns all distributions present in the host environment,
// keyed by PEP 503-normalized name with the installed version as value.
func (r *Runner) ListInstalled() (map[string]string, error) {
	cmd := exec.Command(r.Python, "-m", "pip", "list", "--format=json", "--disable-pip-version-check")

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("pip list failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("pip list failed: %w", err)
	}

	return parseList(output)
}

// Freeze returns the environment's requirement pins as produced by
// pip freeze, suitable for re-installation with pip install -r.
func (r *Runner) Freeze() ([]byte, error) {
	cmd := exec.Command(r.Python, "-m", "pip", "freeze", "--disable-pip-version-check")

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("pip freeze failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("pip freeze failed: %w", err)
	}

	return output, nil
}

// Version returns pip's own version banner, e.g.
// "pip 24.0 from /usr/lib/python3/dist-packages/pip (python 3.11)".
func (r *Runner) Version() (string, error) {
	cmd := exec.Command(r.Python, "-m", "pip", "--version")

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("pip --version failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("pip --version failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// distribution matches one entry of `pip list --format=json`.
type distribution struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// parseList decodes pip list JSON output into a normalized name → version
// map.
func parseList(data []byte) (map[string]string, error) {
	var dists []distribution
	if err := json.Unmarshal(data, &dists); err != nil {
		return nil, fmt.Errorf("failed to parse pip list output: %w", err)
	}

	installed := make(map[string]string, len(dists))
	for _, d := range dists {
		installed[reqs.Normalize(d.Name)] = d.Version
	}
	return installed, nil
}
