package output

import "github.com/google/uuid"

// Short random instance id used in log tags and metric namespaces
func NewID() (id string) {
	id = uuid.NewString()[:8]
	return
}
