package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every resource handler mounted by pkg/app:
// rooms, customers and reservations.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}
