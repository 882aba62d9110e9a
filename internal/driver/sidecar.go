package driver

import "strings"

// ASTSuffix is appended to a source path to name its syntax tree sidecar.
const ASTSuffix = ".ast.json"

// splitSidecar maps an input path onto its (source, sidecar) pair. A bare
// sidecar path is accepted too: `file.js.ast.json` checks `file.js`.
// Непустой override выигрывает у производного пути.
func splitSidecar(path, override string) (srcPath, astPath string) {
	if strings.HasSuffix(path, ASTSuffix) {
		srcPath = strings.TrimSuffix(path, ASTSuffix)
		astPath = path
	} else {
		srcPath = path
		astPath = path + ASTSuffix
	}
	if override != "" {
		astPath = override
	}
	return srcPath, astPath
}
