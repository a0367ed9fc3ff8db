package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// Store guarda los archivos adjuntos bajo un directorio público de
// uploads. El nombre se hace único anteponiendo la marca de tiempo en
// milisegundos; dos archivos homónimos subidos en el mismo milisegundo
// pueden chocar, algo aceptable a la escala de este sistema. No hay
// deduplicación ni limpieza de huérfanos.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Guardar escribe el contenido y devuelve la ruta pública relativa
// (/uploads/{nombre}) con la que se referencia desde los documentos.
func (s *Store) Guardar(nombre string, datos []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	nombreArchivo := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(nombre))
	ruta := filepath.Join(s.Dir, nombreArchivo)

	if err := os.WriteFile(ruta, datos, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + nombreArchivo, nil
}

// GuardarMultipart lee el archivo subido completo en memoria y lo
// persiste.
func (s *Store) GuardarMultipart(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	datos, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return s.Guardar(fh.Filename, datos)
}

// GuardarTodos persiste una lista de archivos; el primer fallo aborta y
// deja huérfanos los ya escritos (sin compensación).
func (s *Store) GuardarTodos(fhs []*multipart.FileHeader) ([]string, error) {
	rutas := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		ruta, err := s.GuardarMultipart(fh)
		if err != nil {
			return nil, err
		}
		rutas = append(rutas, ruta)
	}
	return rutas, nil
}
