package ioarchive

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
	"github.com/gnames/gnunite/pkg/unite"
)

// ScratchDirError creates an error for a temporary directory that
// cannot be created.
func ScratchDirError(parent string, err error) error {
	msg := "Cannot create temporary directory in <em>%s</em>"
	vars := []any{parent}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create scratch directory: %w", err),
	}
}

// ArchiveReadError creates an error for an archive that cannot be read
// or unpacked.
func ArchiveReadError(path string, err error) error {
	msg := `Cannot read archive <em>%s</em>

<em>Possible causes:</em>
  - Archive is not a gzip-compressed tar file
  - Archive is corrupted`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ArchiveReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read archive %s: %w", path, err),
	}
}

// NoDevMembersError creates an error for an archive without developer
// files.
func NoDevMembersError(path string) error {
	msg := "No '%s' files found in <em>%s</em>"
	vars := []any{unite.DevMarker, path}

	return &gn.Error{
		Code: errcode.NoDevMembersError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no matching members with %q in %s", unite.DevMarker, path),
	}
}

// NoClusterMatchError creates an error for a cluster id that does not
// match any extracted file. Available lists cluster ids that were found.
func NoClusterMatchError(clusterID string, available []string) error {
	msg := `No files found with cluster_id = <em>%s</em>

<em>Cluster ids in the archive:</em> %s`

	vars := []any{clusterID, strings.Join(available, ", ")}

	return &gn.Error{
		Code: errcode.NoClusterMatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no matching cluster %q", clusterID),
	}
}
