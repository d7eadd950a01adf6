package storage

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"time"

	"github.com/sandvall/katalog-grid/pkg/types"
)

const (
	orderFile       = "predefined-order.json"
	legacyOrderFile = "sort-order.json"
	configFileFmt   = "config-%s.json"
	rowsFileFmt     = "rows-%s.json.gz"
)

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{RootFolder: rootFolder}
}

func (d *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(d.RootFolder, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := d.GetFileName(name)
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()
	if err = json.NewEncoder(file).Encode(data); err != nil {
		return err
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		return err
	}
	log.Printf("Saved file: %s", name)
	return nil
}

func (d *DiskStorage) LoadJson(data any, name string) error {
	fileName, _ := d.GetFileName(name)
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(data)
}

func (d *DiskStorage) SaveOrder(order *types.PredefinedSortOrder) error {
	return d.SaveJson(order, orderFile)
}

// LoadOrder reads the predefined order, falling back to the legacy file
// format (driver orders saved as comma-joined strings) and rewriting it
// in the current format on success.
func (d *DiskStorage) LoadOrder() (*types.PredefinedSortOrder, error) {
	order := &types.PredefinedSortOrder{}
	err := d.LoadJson(order, orderFile)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	legacy := &legacySortOrder{}
	if legacyErr := d.LoadJson(legacy, legacyOrderFile); legacyErr != nil {
		return nil, err
	}
	order = legacy.upgrade()
	log.Printf("Loaded legacy sort order, saving in new format")
	if saveErr := d.SaveOrder(order); saveErr != nil {
		log.Printf("Failed to save upgraded sort order: %v", saveErr)
	}
	return order, nil
}

func (d *DiskStorage) SaveGridConfig(gridId string, config *types.GridConfig) error {
	return d.SaveJson(config, fmt.Sprintf(configFileFmt, gridId))
}

func (d *DiskStorage) LoadGridConfig(gridId string) (*types.GridConfig, error) {
	config := &types.GridConfig{}
	err := d.LoadJson(config, fmt.Sprintf(configFileFmt, gridId))
	if errors.Is(err, os.ErrNotExist) {
		return &types.GridConfig{}, nil
	}
	if err != nil {
		return nil, err
	}
	upgradeGridConfig(config)
	return config, nil
}

// SaveRows streams a row snapshot, one row per line, gzipped.
func (d *DiskStorage) SaveRows(kind types.GridKind, rows []*types.DataRow) error {
	fileName, tmpFileName := d.GetFileName(fmt.Sprintf(rowsFileFmt, kind))
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	defer file.Close()
	zipWriter := gzip.NewWriter(file)
	enc := json.NewEncoder(zipWriter)
	for _, row := range rows {
		if err = enc.Encode(row); err != nil {
			zipWriter.Close()
			return err
		}
	}
	if err = zipWriter.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		return err
	}
	log.Printf("Saved %d %s rows", len(rows), kind)
	return nil
}

// LoadRows streams a row snapshot back, normalizing legacy driver field
// representations as it goes.
func (d *DiskStorage) LoadRows(kind types.GridKind, handle func(row *types.DataRow)) error {
	fileName, _ := d.GetFileName(fmt.Sprintf(rowsFileFmt, kind))
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()
	dec := json.NewDecoder(zipReader)
	for {
		row := &types.DataRow{}
		if err = dec.Decode(row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		NormalizeRow(row)
		handle(row)
	}
}
