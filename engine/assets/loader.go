package assets

// Loader turns a file on disk into a ready to use value. Loaders are
// registered on the AssetManager per AssetType.
type Loader interface {
	Load(path string) (interface{}, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string) (interface{}, error)

func (f LoaderFunc) Load(path string) (interface{}, error) {
	return f(path)
}
