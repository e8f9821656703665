package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"transit_info/internal/config"
	"transit_info/internal/models"
)

// CreateSimpleRoute stores a flat source/destination pair with a fixed
// fare. Each pair is unique.
func CreateSimpleRoute(c *gin.Context) {
	var input struct {
		SourceName          string     `json:"source_name" binding:"required"`
		DestinationName     string     `json:"destination_name" binding:"required"`
		SourceLocation      [2]float64 `json:"source_location"`      // [lng, lat]
		DestinationLocation [2]float64 `json:"destination_location"` // [lng, lat]
		Fare                *float64   `json:"fare" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if *input.Fare < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fare must not be negative"})
		return
	}

	route := models.SimpleRoute{
		SourceName:      input.SourceName,
		DestinationName: input.DestinationName,
		SourceLng:       input.SourceLocation[0],
		SourceLat:       input.SourceLocation[1],
		DestinationLng:  input.DestinationLocation[0],
		DestinationLat:  input.DestinationLocation[1],
		Fare:            *input.Fare,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "A route with this source and destination already exists"})
			return
		}
		logrus.WithError(err).Error("CreateSimpleRoute: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed"})
		return
	}
	c.JSON(http.StatusCreated, route)
}

// FindSimpleRoute looks up a pair by source and destination name.
func FindSimpleRoute(c *gin.Context) {
	var input struct {
		Source      string `json:"source" binding:"required"`
		Destination string `json:"destination" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Source and destination are required."})
		return
	}

	var route models.SimpleRoute
	err := config.DB.
		Where("source_name = ? AND destination_name = ?", input.Source, input.Destination).
		First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found."})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("FindSimpleRoute: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fare": route.Fare,
		"source": gin.H{
			"name":     route.SourceName,
			"location": [2]float64{route.SourceLng, route.SourceLat},
		},
		"destination": gin.H{
			"name":     route.DestinationName,
			"location": [2]float64{route.DestinationLng, route.DestinationLat},
		},
	})
}
