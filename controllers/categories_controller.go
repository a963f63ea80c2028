package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
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

// NewCategory creates a category. The image upload is mandatory: a category
// without an asset is invalid, so the body is validated before the file is
// stored and the document inserted last.
func (a *App) NewCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		form, err := c.MultipartForm()
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid multipart form"))
			return
		}
		body, err := dto.ParseCategoryForm(form.Value)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("image is required"))
			return
		}

		names, err := storage.SaveAll(ctx, a.Store, a.Uploads, a.Reaper, []*multipart.FileHeader{file})
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		category := models.Category{
			Name:        body.Name,
			Description: body.Description,
			Image:       names[0],
			CreatedAt:   time.Now().UTC(),
		}
		res, err := col.InsertOne(ctx, category)
		if err != nil {
			a.Reaper.Discard(names...)
			apperrors.Respond(c, err)
			return
		}
		category.ID = res.InsertedID.(bson.ObjectID)

		c.JSON(http.StatusOK, gin.H{"success": true, "category": category})
	}
}

func (a *App) GetCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid category id"))
			return
		}

		var category models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("category"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
	}
}

func (a *App) GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

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

		categories := make([]models.Category, 0)
		for cursor.Next(ctx) {
			var category models.Category
			if err := cursor.Decode(&category); err != nil {
				apperrors.Respond(c, err)
				return
			}
			categories = append(categories, category)
		}
		if err := cursor.Err(); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.Header("Access-Control-Expose-Headers", "X-Total-Count")
		c.Header("X-Total-Count", fmt.Sprintf("1-20/%d", total))
		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

// UpdateCategory applies the body fields and, when a new image is attached,
// swaps the asset: the new file is stored first, the document updated, and
// only then is the old asset discarded.
func (a *App) UpdateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid category id"))
			return
		}

		var existing models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("category"))
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
		body, err := dto.ParseCategoryUpdate(form.Value)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		set := body.SetFields()

		var newNames []string
		if file, err := c.FormFile("image"); err == nil {
			newNames, err = storage.SaveAll(ctx, a.Store, a.Uploads, a.Reaper, []*multipart.FileHeader{file})
			if err != nil {
				apperrors.Respond(c, err)
				return
			}
			set["image"] = newNames[0]
		}

		if len(set) == 0 {
			apperrors.Respond(c, apperrors.Validation("no updates provided"))
			return
		}

		if _, err := col.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			a.Reaper.Discard(newNames...)
			apperrors.Respond(c, err)
			return
		}
		if len(newNames) > 0 {
			a.Reaper.Discard(existing.Image)
		}

		var updated models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "category": updated})
	}
}

// DeleteCategory cascades: the category id is pulled from every product's
// category set first, and the document is removed only after that write
// acknowledges. A crash mid-way can orphan the asset but never leaves a
// live category referencing one.
func (a *App) DeleteCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		col := database.OpenCollection("categories")
		productsCol := database.OpenCollection("products")

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			apperrors.Respond(c, apperrors.Validation("invalid category id"))
			return
		}

		var category models.Category
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				apperrors.Respond(c, apperrors.NotFound("category"))
				return
			}
			apperrors.Respond(c, err)
			return
		}

		if _, err := productsCol.UpdateMany(ctx,
			bson.M{"category": category.ID},
			bson.M{"$pull": bson.M{"category": category.ID}},
		); err != nil {
			apperrors.Respond(c, err)
			return
		}

		a.Reaper.Discard(category.Image)

		if _, err := col.DeleteOne(ctx, bson.M{"_id": category.ID}); err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
