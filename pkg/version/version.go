// Package version describes management API versions and the features
// that depend on them.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btmgmt/btmgmt-go/pkg/catalog"
)

// Library is the version of this module.
const Library = "0.3.0"

// APIVersion is the management interface version reported by the kernel
// as "major.revision".
type APIVersion struct {
	Major    uint8
	Revision uint16
}

// Versions that introduced commands this module relies on.
var (
	// ExtendedIndexList introduced ReadExtendedIndexList.
	ExtendedIndexList = APIVersion{Major: 1, Revision: 9}

	// ExtendedControllerInfo introduced ReadExtendedControllerInfo.
	ExtendedControllerInfo = APIVersion{Major: 1, Revision: 14}
)

// Parse parses a "major.revision" version string.
func Parse(s string) (APIVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return APIVersion{}, fmt.Errorf("invalid version %q: expected major.revision", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return APIVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	rev, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return APIVersion{}, fmt.Errorf("invalid version %q: bad revision component", s)
	}

	return APIVersion{Major: uint8(major), Revision: uint16(rev)}, nil
}

// FromReply returns the version carried by a ReadVersionInfo reply.
func FromReply(r *catalog.VersionReply) APIVersion {
	return APIVersion{Major: r.Version, Revision: r.Revision}
}

// String returns the version as "major.revision".
func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Revision)
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal
// to or newer than other.
func (v APIVersion) Compare(other APIVersion) int {
	switch {
	case v.Major != other.Major:
		if v.Major < other.Major {
			return -1
		}
		return 1
	case v.Revision < other.Revision:
		return -1
	case v.Revision > other.Revision:
		return 1
	}
	return 0
}

// AtLeast reports whether v is min or newer.
func (v APIVersion) AtLeast(min APIVersion) bool {
	return v.Compare(min) >= 0
}
