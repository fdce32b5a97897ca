package capabilities

import "context"

// ShareRecords habilita crear grants sobre pacientes propios.
const ShareRecords = "records:share"

// Resolver responde si el plan del usuario incluye una capability.
type Resolver interface {
	Has(ctx context.Context, userID string, capability string) (bool, error)
}
