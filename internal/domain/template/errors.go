package template

import "errors"

var ErrNameRequired = errors.New("template name is required")
