// Package iodetect statically classifies a C/C++ solution's file-I/O style
// from its source text. This is deliberately a best-effort regex
// classifier, not a real parser — upgrading it is out of contract (see
// spec §9 Design Notes). It is pure: same content in, same result out,
// and it never touches the filesystem beyond the one read the caller
// performs.
package iodetect

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fouguai/judgecore/internal/model"
)

var (
	nameMacroRe    = regexp.MustCompile(`#define\s+NAME\s+"([^"]+)"`)
	docfileRe      = regexp.MustCompile(`\bvoid\s+docfile\s*\(`)
	isOpenRe       = regexp.MustCompile(`\.is_open\s*\(\s*\)`)
	ifstreamCondRe = regexp.MustCompile(`if\s*\(\s*(?:std::)?ifstream`)
	fopenCondRe    = regexp.MustCompile(`if\s*\(\s*fopen\s*\(\s*NAME`)

	ifstreamRe = regexp.MustCompile(`\b(?:std::)?ifstream\b`)
	ofstreamRe = regexp.MustCompile(`\b(?:std::)?ofstream\b`)
	fstreamRe  = regexp.MustCompile(`\b(?:std::)?fstream\b\s*[\w(]`) // needs a following name or '(', so `#include <fstream>` does not count
	fopenRe    = regexp.MustCompile(`\bfopen\s*\(`)
	freopenRe  = regexp.MustCompile(`\bfreopen\s*\(\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*(stdin|stdout)\s*\)`)

	// constructor-argument filenames: ifstream fin("name"), ifstream fin{"name"}
	streamCtorRe = regexp.MustCompile(`(?:std::)?(?:ifstream|ofstream|fstream)\s+\w+\s*[\(\{]\s*"([^"]+)"`)
	// bare declarations later opened via <var>.open("name"): ifstream fin;
	ifstreamDeclRe = regexp.MustCompile(`(?:std::)?ifstream\s+(\w+)\s*;`)
	ofstreamDeclRe = regexp.MustCompile(`(?:std::)?ofstream\s+(\w+)\s*;`)
	// <var>.open("name"), attributed to input/output via the declarations above
	streamOpenCallRe = regexp.MustCompile(`(\w+)\s*\.\s*open\s*\(\s*"([^"]+)"`)
	// #define FI/IN/INPUT/INPUTFILE "name"
	inputMacroRe  = regexp.MustCompile(`#define\s+(?:FI|IN|INPUT|INPUTFILE)\s+"([^"]+)"`)
	outputMacroRe = regexp.MustCompile(`#define\s+(?:FO|OUT|OUTPUT|OUTPUTFILE)\s+"([^"]+)"`)
	// fopen(path, "r") / fopen(path, "w")
	fopenPathModeRe = regexp.MustCompile(`fopen\s*\(\s*"([^"]+)"\s*,\s*"(r|w)"\s*\)`)
)

var cppExts = map[string]bool{
	".c": true, ".cpp": true, ".cc": true, ".cxx": true, ".h": true, ".hpp": true,
}

// IsCLike reports whether path's extension is one the detector analyzes.
func IsCLike(path string) bool {
	return cppExts[strings.ToLower(filepath.Ext(path))]
}

// Detect classifies source content. For non-C/C++ paths it returns an
// empty result without inspecting content, per spec §4.2.1.
func Detect(path string, content string, problemID string) model.IoDetectionResult {
	if !IsCLike(path) {
		return model.IoDetectionResult{Methods: map[model.IOMethod]bool{}}
	}

	result := model.IoDetectionResult{Methods: map[model.IOMethod]bool{}}

	if m := nameMacroRe.FindStringSubmatch(content); m != nil {
		result.NameMacro = m[1]
	}

	hasDocfile := docfileRe.MatchString(content)
	if result.NameMacro != "" && hasDocfile {
		result.ConditionalIO = true
		result.Adaptive = true
	}
	if ifstreamCondRe.MatchString(content) || fopenCondRe.MatchString(content) || isOpenRe.MatchString(content) {
		result.Adaptive = true
	}
	if hasDocfile && (strings.Contains(content, "stdin") || strings.Contains(content, "stdout")) {
		result.Adaptive = true
	}
	if result.Adaptive {
		result.ConditionalIO = true
	}

	if ifstreamRe.MatchString(content) {
		result.Methods[model.MethodIfstream] = true
	}
	if ofstreamRe.MatchString(content) {
		result.Methods[model.MethodOfstream] = true
	}
	if fstreamRe.MatchString(content) {
		result.Methods[model.MethodFstream] = true
	}
	if fopenRe.MatchString(content) {
		result.Methods[model.MethodFopen] = true
	}
	for _, m := range freopenRe.FindAllStringSubmatch(content, -1) {
		target := m[3]
		if target == "stdin" {
			result.Methods[model.MethodFreopenStdin] = true
		} else {
			result.Methods[model.MethodFreopenStdout] = true
		}
	}

	inputFile, outputFile := extractFileNames(content, freopenRe.FindAllStringSubmatch(content, -1))
	result.InputFile = inputFile
	result.OutputFile = outputFile

	if result.HasFileIO() {
		applyDefaultNames(&result, problemID)
	}

	return result
}

// extractFileNames resolves explicit filenames by the priority in spec
// §4.2.5: freopen redirections first, then stream constructor args, then
// `.open("name")`, then macros, then fopen mode inference.
func extractFileNames(content string, freopenMatches [][]string) (input, output string) {
	for _, m := range freopenMatches {
		path, target := m[1], m[3]
		if target == "stdin" && input == "" {
			input = path
		} else if target == "stdout" && output == "" {
			output = path
		}
	}
	if input == "" || output == "" {
		for _, m := range streamCtorRe.FindAllStringSubmatch(content, -1) {
			assignStreamFilename(content, m[0], m[1], &input, &output)
		}
	}
	if input == "" || output == "" {
		vars := declaredStreamVars(content)
		for _, m := range streamOpenCallRe.FindAllStringSubmatch(content, -1) {
			recv, name := m[1], m[2]
			switch vars[recv] {
			case "in":
				if input == "" {
					input = name
				}
			case "out":
				if output == "" {
					output = name
				}
			}
		}
	}
	if input == "" {
		if m := inputMacroRe.FindStringSubmatch(content); m != nil {
			input = m[1]
		}
	}
	if output == "" {
		if m := outputMacroRe.FindStringSubmatch(content); m != nil {
			output = m[1]
		}
	}
	if input == "" || output == "" {
		for _, m := range fopenPathModeRe.FindAllStringSubmatch(content, -1) {
			path, mode := m[1], m[2]
			if mode == "r" && input == "" {
				input = path
			} else if mode == "w" && output == "" {
				output = path
			}
		}
	}
	return input, output
}

// declaredStreamVars maps a bare-declared stream variable name ("ifstream
// fin;") to "in" or "out", so a later `fin.open("name")` call can be
// attributed to the right side instead of being dropped as ambiguous.
func declaredStreamVars(content string) map[string]string {
	vars := make(map[string]string)
	for _, m := range ifstreamDeclRe.FindAllStringSubmatch(content, -1) {
		vars[m[1]] = "in"
	}
	for _, m := range ofstreamDeclRe.FindAllStringSubmatch(content, -1) {
		vars[m[1]] = "out"
	}
	return vars
}

// assignStreamFilename guesses whether a stream construct/open call is for
// input or output by looking at the preceding token ("ifstream"/"ofstream")
// in the surrounding snippet; ambiguous ("fstream"/bare ".open(") calls are
// left unassigned rather than guessed.
func assignStreamFilename(content, snippet, name string, input, output *string) {
	lower := strings.ToLower(snippet)
	switch {
	case strings.Contains(lower, "ifstream") && *input == "":
		*input = name
	case strings.Contains(lower, "ofstream") && *output == "":
		*output = name
	}
}

// applyDefaultNames fills in the conventional NAME.INP/NAME.OUT (or
// problem-id-qualified, or input.txt/output.txt) names per spec §4.2.6.
// Each side is defaulted independently, gated on that side's own filename
// still being empty and its own method flag being set — a resolved input
// filename must not block defaulting an unresolved output filename (or
// vice versa), and an output name is never fabricated when only input
// methods were seen (spec §4.2 Edge rule).
func applyDefaultNames(r *model.IoDetectionResult, problemID string) {
	hasInputMethod := r.Methods[model.MethodIfstream] || r.Methods[model.MethodFreopenStdin] || r.Methods[model.MethodFopen] || r.Methods[model.MethodFstream]
	hasOutputMethod := r.Methods[model.MethodOfstream] || r.Methods[model.MethodFreopenStdout] || r.Methods[model.MethodFstream]

	base := "NAME"
	switch {
	case r.NameMacro != "":
		base = r.NameMacro
	case problemID != "":
		base = problemID
	default:
		// No NAME macro and no problem id: conventional plain names.
		if r.InputFile == "" && hasInputMethod {
			r.InputFile = "input.txt"
		}
		if r.OutputFile == "" && hasOutputMethod {
			r.OutputFile = "output.txt"
		}
		return
	}
	if r.InputFile == "" && hasInputMethod {
		r.InputFile = base + ".INP"
	}
	if r.OutputFile == "" && hasOutputMethod {
		r.OutputFile = base + ".OUT"
	}
}
