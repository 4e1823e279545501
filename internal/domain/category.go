package domain

type Category struct {
	ID   int64  `json:"id_categoria"`
	Name string `json:"nombre_categoria"`
}
