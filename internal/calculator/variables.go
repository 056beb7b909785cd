package calculator

import (
	"strconv"
)

// Variable names.
const (
	VarVersion         = "Version"
	VarExtendedVersion = "ExtendedVersion"
	VarMajor           = "Major"
	VarMinor           = "Minor"
	VarPatch           = "Patch"
	VarPreRelease      = "PreRelease"
	VarMetaData        = "Metadata"
	VarTag             = "Tag"
	VarBuildNumber     = "BuildNumber"
	VarCommitID        = "CommitId"
	VarDirty           = "Dirty"
)

// Variables flattens a result into named string values. Absent values are
// empty strings.
func Variables(r VersionResult) map[string]string {
	v := r.Version
	vars := map[string]string{
		VarVersion:         v.StringWithPreRelease(),
		VarExtendedVersion: v.ExtendedString(),
		VarMajor:           v.Major(),
		VarMinor:           v.Minor(),
		VarPatch:           v.Patch(),
		VarPreRelease:      v.PreRelease().OrElse(""),
		VarMetaData:        v.MetaData().OrElse(""),
		VarTag:             r.Describe.Tag.OrElse(""),
		VarCommitID:        r.Describe.CommitID.OrElse(""),
		VarDirty:           strconv.FormatBool(r.Describe.TreeState.IsDirty()),
		VarBuildNumber:     "",
	}
	if n, ok := r.Describe.Depth.Get(); ok {
		vars[VarBuildNumber] = strconv.FormatInt(n, 10)
	}
	return vars
}
