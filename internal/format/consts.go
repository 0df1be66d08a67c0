package format

// Magic numbers carried by policy module packages, little-endian on disk.
const (
	// PackageMagic identifies a module package container.
	PackageMagic = 0xf97cff8f
	// ModuleMagic identifies a policy module section.
	ModuleMagic = 0xf97cff8d
	// SectionFileContexts identifies a file-contexts section. When it
	// appears at the first section offset the package is an old-style
	// base package with no module header.
	SectionFileContexts = 0xf97cff90
)

// ModuleTarget is the target string every policy module header carries.
const ModuleTarget = "SE Linux Module"

// Policy type words inside a module header.
const (
	policyTypeBase   = 1
	policyTypeModule = 2
)

// PolicyType classifies a parsed package.
type PolicyType int

const (
	// TypeBase marks a base policy package.
	TypeBase PolicyType = iota + 1
	// TypeModule marks a loadable policy module package.
	TypeModule
)

func (t PolicyType) String() string {
	switch t {
	case TypeBase:
		return "base"
	case TypeModule:
		return "module"
	default:
		return "unknown"
	}
}

// packageHeaderSize covers magic, container version, and section count.
const packageHeaderSize = 12

// maxNameLen bounds the length-prefixed strings in a module header so a
// corrupted length word cannot drive a huge allocation.
const maxNameLen = 1 << 16
