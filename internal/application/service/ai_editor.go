package service

import "context"

// AIEditor asks a language model to rewrite an AI export document following
// instruction. The reply is returned untrusted.
type AIEditor interface {
	EditDocument(ctx context.Context, instruction string, document []byte) ([]byte, error)
}
