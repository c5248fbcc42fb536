package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"tourism_guide/internal/config"
	"tourism_guide/internal/models"
	"tourism_guide/internal/transit"
)

func writeWorkbook(c *gin.Context, f *excelize.File, name string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, name, time.Now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		logrus.WithError(err).Error("export: workbook write failed")
	}
}

// ExportRoutes produces the back-office route sheet with computed fares
// and the same N/A display values the site shows.
func ExportRoutes(c *gin.Context) {
	lookup := transit.NewGormDestinationLookup(config.DB)
	catalog := transit.NewCatalog(transit.NewGormRouteSource(config.DB), lookup, nil)
	routes, err := catalog.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Unable to load routes. Please try again.", "retryable": true})
		return
	}

	f := excelize.NewFile()
	sheet := "Routes"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Route Name", "Origin", "Destination", "Mode", "Distance", "Est. Time", "Fare", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, r := range routes {
		d := transit.Present(r,
			endpointName(c, lookup, r.OriginID),
			endpointName(c, lookup, r.DestinationID))
		values := []interface{}{
			d.ID, d.Name, d.OriginName, d.DestinationName, string(d.Mode),
			d.DistanceDisplay, d.TimeDisplay, d.FareDisplay, d.Description,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, f, "routes")
}

// ExportDestinations produces the back-office destination sheet.
func ExportDestinations(c *gin.Context) {
	var destinations []models.Destination
	if err := config.DB.Preload("Category").Order("name").Find(&destinations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	f := excelize.NewFile()
	sheet := "Destinations"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Category", "Address", "Latitude", "Longitude", "Contact", "Opening Hours", "Entry Fee", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, d := range destinations {
		categoryName := ""
		if d.Category != nil {
			categoryName = d.Category.Name
		}
		var lat, lng interface{}
		if d.Latitude != nil {
			lat = *d.Latitude
		}
		if d.Longitude != nil {
			lng = *d.Longitude
		}
		values := []interface{}{
			d.ID, d.Name, categoryName, d.Address, lat, lng,
			d.ContactNumber, d.OpeningHours, d.EntryFee, d.IsActive,
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	writeWorkbook(c, f, "destinations")
}
