package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"sellerdesk/internal/api"
	"sellerdesk/internal/models"
)

type ProductHandler struct {
	*Base
}

// ListProducts prefers the realtime snapshot; an empty snapshot falls back
// to the REST list so a freshly started server still renders the catalog.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, _ := h.Hub.Products()
	if len(products) == 0 {
		fetched, err := h.apiFor(r).ListProducts(r.Context())
		if err != nil {
			if redirected := h.maybeLoginRedirect(w, r, err); redirected {
				return
			}
			slog.Error("Failed to fetch products", "error", err)
		} else {
			products = fetched
		}
	}

	h.render(w, r, "products.html", map[string]interface{}{
		"Products": products,
	})
}

func (h *ProductHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "product_form.html", map[string]interface{}{
		"Product": models.Product{},
		"IsNew":   true,
	})
}

func (h *ProductHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	products, _ := h.Hub.Products()
	for _, p := range products {
		if p.ID == id {
			h.render(w, r, "product_form.html", map[string]interface{}{
				"Product": p,
				"IsNew":   false,
			})
			return
		}
	}
	http.Error(w, "Product not found", http.StatusNotFound)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, formErr := h.parseProductForm(w, r)
	if formErr != "" {
		h.flashError(w, r, nil, formErr, "/products/new")
		return
	}

	if err := h.apiFor(r).CreateProduct(r.Context(), product); err != nil {
		RecordWrite("product_create", false)
		h.flashError(w, r, err, "Error saving product.", "/products/new")
		return
	}
	RecordWrite("product_create", true)
	h.flashSuccess(w, r, "Product added successfully!", "/products")
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, formErr := h.parseProductForm(w, r)
	if formErr != "" {
		h.flashError(w, r, nil, formErr, "/products")
		return
	}
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		h.flashError(w, r, err, "Invalid product ID.", "/products")
		return
	}
	product.ID = id

	if err := h.apiFor(r).UpdateProduct(r.Context(), product); err != nil {
		RecordWrite("product_update", false)
		h.flashError(w, r, err, "Error updating product.", "/products")
		return
	}
	RecordWrite("product_update", true)
	h.flashSuccess(w, r, "Product updated successfully!", "/products")
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		h.flashError(w, r, err, "Invalid product ID.", "/products")
		return
	}
	if err := h.apiFor(r).DeleteProduct(r.Context(), id); err != nil {
		RecordWrite("product_delete", false)
		h.flashError(w, r, err, "Error deleting product.", "/products")
		return
	}
	RecordWrite("product_delete", true)
	h.flashSuccess(w, r, "Product deleted successfully!", "/products")
}

// parseProductForm reads the multipart product form, uploading a new image
// when one was attached. The second return is a user-facing validation
// message, empty on success.
func (h *ProductHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (models.Product, string) {
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		return models.Product{}, "File too large. Max 10MB."
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return models.Product{}, "Title is required."
	}
	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		return models.Product{}, "Price must be a positive number."
	}
	stock, err := strconv.Atoi(r.FormValue("stock"))
	if err != nil || stock < 0 {
		return models.Product{}, "Stock must be zero or more."
	}

	product := models.Product{
		Title:       title,
		Price:       price,
		Stock:       stock,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("existing_image"),
	}

	if featuresJSON := r.FormValue("features"); featuresJSON != "" {
		if err := json.Unmarshal([]byte(featuresJSON), &product.Features); err != nil {
			return models.Product{}, "Invalid feature definitions."
		}
		for _, f := range product.Features {
			if f.Type != "multiple_choice" && f.Type != "text" && f.Type != "numeric" {
				return models.Product{}, "Feature type must be multiple_choice, text or numeric."
			}
			if f.Type == "multiple_choice" && len(f.Options) == 0 {
				return models.Product{}, "Multiple choice features need at least one option."
			}
		}
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		data, filename, err := api.PrepareImage(file, header.Filename)
		if err != nil {
			return models.Product{}, "Could not process image: " + err.Error()
		}
		url, err := h.apiFor(r).UploadImage(r.Context(), filename, data)
		if err != nil {
			slog.Error("Image upload failed", "error", err)
			return models.Product{}, "Image upload failed."
		}
		product.ImageURL = url
	}

	return product, ""
}

// maybeLoginRedirect handles an expired remote session on read paths.
func (h *ProductHandler) maybeLoginRedirect(w http.ResponseWriter, r *http.Request, err error) bool {
	if isUnauthorized(err) {
		h.redirectToLogin(w, r)
		return true
	}
	return false
}
