package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"catalogapi/apperrors"
	"catalogapi/database"
	"catalogapi/dto"
	"catalogapi/models"
	"catalogapi/query"
	"catalogapi/storage"
)

// productDetails is the read-one view: the document with its category
// references resolved.
type productDetails struct {
	models.Product
	Categories []models.Category `json:"categories"`
}

// CreateProduct accepts 0..N uploads under "images", the body fields and the
// category id list. The acting user comes from the authenticated context,
// never from the body. Upload-policy violations fail the request before any
// document mutation.
func (a *App) CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		form, err := c.MultipartForm()
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid multipart form"))
			return
		}

		body, err := dto.ParseProductForm(form.Value)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		categoryIDs, err := dto.ParseCategoryIDs(formValue(form.Value, "category"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		userID, err := bson.ObjectIDFromHex(c.GetString("userID"))
		if err != nil {
			apperrors.Respond(c, fmt.Errorf("invalid principal id"))
			return
		}

		names, err := storage.SaveAll(ctx, a.Store, a.Uploads, a.Reaper, form.File["images"])
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		product := models.Product{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Stock:       body.Stock,
			Images:      names,
			Category:    categoryIDs,
			User:        userID,
			CreatedAt:   time.Now().UTC(),
		}
		res, err := col.InsertOne(ctx, product)
		if err != nil {
			a.Reaper.Discard(names...)
			apperrors.Respond(c, err)
			return
		}
		product.ID = res.InsertedID.(bson.ObjectID)

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}

func (a *App) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		total, err := col.CountDocuments(ctx, bson.M{})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		cursor, err := query.New(c.Request.URL.Query()).
			Search().
			Filter().
			Paginate(resultPerPage).
			Find(ctx, col)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		for cursor.Next(ctx) {
			var product models.Product
			if err := cursor.Decode(&product); err != nil {
				apperrors.Respond(c, err)
				return
			}
			products = append(products, product)
		}
		if err := cursor.Err(); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.Header("Access-Control-Expose-Headers", "Content-Range")
		c.Header("Content-Range", fmt.Sprintf("1-20/%d", total))
		c.JSON(http.StatusOK, gin.H{"data": products, "total": total})
	}
}

func (a *App) GetProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")
		categoriesCol := database.OpenCollection("categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid product id"))
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("product"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		categories := make([]models.Category, 0)
		if len(product.Category) > 0 {
			cursor, err := categoriesCol.Find(ctx, bson.M{"_id": bson.M{"$in": product.Category}})
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			defer cursor.Close(ctx)
			if err := cursor.All(ctx, &categories); err != nil {
				apperrors.Respond(c, err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"product": productDetails{Product: product, Categories: categories},
		})
	}
}

// UpdateProduct appends any uploads under "newImages" to the existing image
// list; prior images are only ever removed through DeleteImage. The category
// list is re-parsed and re-deduplicated the same way as on create.
func (a *App) UpdateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid product id"))
			return
		}

		var existing models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("product"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid multipart form"))
			return
		}
		body, err := dto.ParseProductUpdate(form.Value)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		categoryIDs, err := dto.ParseCategoryIDs(formValue(form.Value, "category"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		names, err := storage.SaveAll(ctx, a.Store, a.Uploads, a.Reaper, form.File["newImages"])
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		set := body.SetFields()
		set["category"] = categoryIDs
		if len(names) > 0 {
			set["images"] = append(existing.Images, names...)
		}

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			a.Reaper.Discard(names...)
			apperrors.Respond(c, err)
			return
		}

		var updated models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "product": updated})
	}
}

// DeleteProduct discards every referenced asset best-effort, then deletes the
// document. A failed asset removal never blocks the delete.
func (a *App) DeleteProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid product id"))
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("product"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		a.Reaper.Discard(product.Images...)

		if _, err := col.DeleteOne(ctx, bson.M{"_id": product.ID}); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}

// DeleteImage pulls one reference off the images list and discards the
// asset. Membership is not checked first: a no-op pull and the discard both
// proceed regardless.
func (a *App) DeleteImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid product id"))
			return
		}
		imageID := c.Param("imageid")

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("product"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		if _, err := col.UpdateOne(ctx,
			bson.M{"_id": product.ID},
			bson.M{"$pull": bson.M{"images": imageID}},
		); err != nil {
			apperrors.Respond(c, err)
			return
		}

		a.Reaper.Discard(imageID)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted successfully"})
	}
}

// AddProductImages appends newly uploaded images to an existing product
// without touching any other field.
func (a *App) AddProductImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid product id"))
			return
		}

		var product models.Product
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("product"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid multipart form"))
			return
		}

		names, err := storage.SaveAll(ctx, a.Store, a.Uploads, a.Reaper, form.File["images"])
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		if len(names) > 0 {
			if _, err := col.UpdateOne(ctx,
				bson.M{"_id": product.ID},
				bson.M{"$push": bson.M{"images": bson.M{"$each": names}}},
			); err != nil {
				a.Reaper.Discard(names...)
				apperrors.Respond(c, err)
				return
			}
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Added Successfully"})
	}
}

func formValue(values map[string][]string, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
