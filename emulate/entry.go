package emulate

// FunctionLike calls fn once per name!(..) invocation in f, in source
// order, with the tokens between the delimiters.
func FunctionLike(f *File, name string, fn func(TokenStream) error) error {
	return defaultRunner.FunctionLike(f, name, fn)
}

// AttributeLike calls fn once per #[name(..)] attribute in f with the
// attribute arguments and the declaration minus that attribute.
func AttributeLike(f *File, name string, fn func(attr, item TokenStream) error) error {
	return defaultRunner.AttributeLike(f, name, fn)
}

// DeriveLike calls fn once per type declaration that derives name, with
// the declaration minus its derive attributes and the helper attributes.
func DeriveLike(f *File, name string, helpers []string, fn func(TokenStream) error) error {
	return defaultRunner.DeriveLike(f, name, helpers, fn)
}

// Scan lists the sites of name in f.
func Scan(f *File, shape Shape, name string, helpers ...string) ([]Site, error) {
	return defaultRunner.Scan(f, shape, name, helpers...)
}

// FunctionLikeFile parses the fixture at path and runs FunctionLike on it.
func FunctionLikeFile(path, name string, fn func(TokenStream) error) error {
	f, err := ParseFile(path)
	if err != nil {
		return err
	}
	return FunctionLike(f, name, fn)
}

// AttributeLikeFile parses the fixture at path and runs AttributeLike on it.
func AttributeLikeFile(path, name string, fn func(attr, item TokenStream) error) error {
	f, err := ParseFile(path)
	if err != nil {
		return err
	}
	return AttributeLike(f, name, fn)
}

// DeriveLikeFile parses the fixture at path and runs DeriveLike on it.
func DeriveLikeFile(path, name string, helpers []string, fn func(TokenStream) error) error {
	f, err := ParseFile(path)
	if err != nil {
		return err
	}
	return DeriveLike(f, name, helpers, fn)
}
