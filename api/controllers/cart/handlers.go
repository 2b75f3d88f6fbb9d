package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amara-labs/zawadi-backend/api/middleware"
	"github.com/amara-labs/zawadi-backend/api/responses"
	"github.com/amara-labs/zawadi-backend/api/validators"
	cartsvc "github.com/amara-labs/zawadi-backend/internal/cart"
	"github.com/amara-labs/zawadi-backend/internal/catalog"
	pkgerrors "github.com/amara-labs/zawadi-backend/pkg/errors"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
)

// Manager is the cart access surface the handlers consume.
type Manager interface {
	Store(ctx context.Context, sessionID string) (*cartsvc.Store, error)
	Snapshots() *cartsvc.Snapshots
	Evict(sessionID string)
}

// ProductLookup hydrates candidate items from the catalog.
type ProductLookup interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
}

func sessionStore(r *http.Request, manager Manager) (*cartsvc.Store, string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeInternal, "session missing from request context")
	}
	store, err := manager.Store(r.Context(), sessionID)
	if err != nil {
		return nil, "", err
	}
	return store, sessionID, nil
}

func mutationStatus(result cartsvc.ValidationResult) int {
	if result.Valid {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// Fetch returns the session's cart with shipping summary.
func Fetch(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, CartView{Cart: store.Cart(), Shipping: store.ShippingInfo()})
	}
}

// AddItem validates and adds a candidate item. Rejections come back as a
// 422 envelope carrying the untouched cart and the validation result.
func AddItem(manager Manager, products ProductLookup, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := hydrate(r.Context(), products, logg, payload.Item)

		result := store.AddItem(r.Context(), item, payload.Quantity)
		responses.WriteSuccessStatus(w, mutationStatus(result), MutationView{Cart: store.Cart(), Validation: result})
	}
}

// UpdateItem changes the quantity of a cart line. Quantity zero removes it.
func UpdateItem(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		result := store.UpdateItem(r.Context(), itemID, payload.Quantity)
		responses.WriteSuccessStatus(w, mutationStatus(result), MutationView{Cart: store.Cart(), Validation: result})
	}
}

// RemoveItem deletes a cart line. Removing an absent line is a no-op.
func RemoveItem(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(r.Context(), chi.URLParam(r, "itemID"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// Clear empties the cart and drops its snapshot.
func Clear(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// Validate runs the whole-cart checkout gate without mutating anything.
func Validate(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, MutationView{Cart: store.Cart(), Validation: store.Validate()})
	}
}

// Shipping returns the standard-tier shipping summary.
func Shipping(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.ShippingInfo())
	}
}

// ShippingOptions quotes every shipping tier for the current subtotal.
func ShippingOptions(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, err := sessionStore(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.ShippingOptions())
	}
}

// Export returns the raw stored snapshot blob for diagnostics.
func Export(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request context"))
			return
		}

		blob, err := manager.Snapshots().Export(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ExportView{Blob: blob})
	}
}

// Import restores a previously exported snapshot blob and rehydrates the
// session's cart from it.
func Import(manager Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request context"))
			return
		}

		var payload ImportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !manager.Snapshots().Import(r.Context(), sessionID, payload.Blob) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "blob is not an importable cart snapshot"))
			return
		}

		manager.Evict(sessionID)
		store, err := manager.Store(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, CartView{Cart: store.Cart(), Shipping: store.ShippingInfo()})
	}
}

// hydrate fills catalog-owned fields the storefront omitted. Catalog
// failures are absorbed; validation decides the item's fate either way.
func hydrate(ctx context.Context, products ProductLookup, logg *logger.Logger, payload ItemPayload) cartsvc.Item {
	item := payload.toItem()
	if products == nil {
		return item
	}
	if item.MaxQuantity != nil && item.Available != nil && !item.Price.IsZero() && item.Name != "" {
		return item
	}

	product, err := products.GetProduct(ctx, item.ID)
	if err != nil {
		if logg != nil {
			logg.Warn(logg.WithField(ctx, "product_id", item.ID), "catalog lookup failed during add")
		}
		return item
	}

	if item.Name == "" {
		item.Name = product.Name
	}
	if item.Image == "" {
		item.Image = product.Image
	}
	if item.Origin == "" {
		item.Origin = product.Origin
	}
	if item.Category == "" {
		item.Category = product.Category
	}
	if item.Price.IsZero() {
		item.Price = product.Price
	}
	if item.MaxQuantity == nil {
		item.MaxQuantity = product.MaxQuantity
	}
	if item.Available == nil {
		item.Available = product.Available
	}
	return item
}
