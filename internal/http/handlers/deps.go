package handlers

import (
	"immolist/internal/config"
	"immolist/internal/services"
)

type Deps struct {
	Pages  *PagesHandler
	API    *PropertyHandler
	Upload *UploadHandler
}

func NewDeps(svc *services.PropertyService, cfg config.Config) *Deps {
	return &Deps{
		Pages:  &PagesHandler{Props: svc},
		API:    &PropertyHandler{Props: svc},
		Upload: &UploadHandler{MediaDir: cfg.MediaDir},
	}
}
