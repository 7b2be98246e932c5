package msdata

import "errors"

var (
	// ErrNoSources means the dataset root resolves to no source units
	ErrNoSources = errors.New("msdata: dataset contains no sources")
	// ErrProviderUnavailable means the provider for the dataset is not
	// compiled in or not configured
	ErrProviderUnavailable = errors.New("msdata: provider unavailable")
	// ErrInvalidSpectrumIndex means an ordinal outside [0, Size())
	ErrInvalidSpectrumIndex = errors.New("msdata: invalid spectrum index")
	// ErrInvalidNativeID means a native id that is malformed or not in
	// the index
	ErrInvalidNativeID = errors.New("msdata: invalid native id")
	// ErrParameterNotFound means neither a parameter name nor any of its
	// alternatives is present in a live parameter list
	ErrParameterNotFound = errors.New("msdata: parameter not found")
	// ErrNoCentroider means centroiding was requested on a list built
	// without a centroider
	ErrNoCentroider = errors.New("msdata: no centroider configured")
)
