package manifest

// FileName is the manifest file name.
const FileName = "package.json"

// Bucket is a name-to-string map inside the manifest.
type Bucket string

const (
	Scripts         Bucket = "scripts"
	Dependencies    Bucket = "dependencies"
	DevDependencies Bucket = "devDependencies"
)

// DependencyBuckets lists the buckets that hold package requirements.
var DependencyBuckets = []Bucket{Dependencies, DevDependencies}

// Entry is one name/value pair of a bucket.
type Entry struct {
	Name  string
	Value string
}
