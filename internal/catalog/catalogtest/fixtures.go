package catalogtest

import (
	"fmt"

	"github.com/five82/pawmatch/internal/catalog"
)

// SampleDogs returns a small fixed catalog spread over a few breeds.
func SampleDogs() []catalog.Dog {
	return []catalog.Dog{
		{ID: "d01", Name: "Biscuit", Age: 2, Breed: "Labrador Retriever", ZipCode: "10001", ImageURL: "https://img.example/d01.jpg"},
		{ID: "d02", Name: "Mochi", Age: 0, Breed: "Pug", ZipCode: "94105", ImageURL: "https://img.example/d02.jpg"},
		{ID: "d03", Name: "Rex", Age: 7, Breed: "German Shepherd", ZipCode: "10001", ImageURL: "https://img.example/d03.jpg"},
		{ID: "d04", Name: "Luna", Age: 4, Breed: "Beagle", ZipCode: "60614", ImageURL: "https://img.example/d04.jpg"},
		{ID: "d05", Name: "Ziggy", Age: 11, Breed: "Labrador Retriever", ZipCode: "60614", ImageURL: "https://img.example/d05.jpg"},
		{ID: "d06", Name: "Pepper", Age: 1, Breed: "Beagle", ZipCode: "94105", ImageURL: "https://img.example/d06.jpg"},
		{ID: "d07", Name: "Ollie", Age: 3, Breed: "Pug", ZipCode: "10001", ImageURL: "https://img.example/d07.jpg"},
		{ID: "d08", Name: "Nala", Age: 14, Breed: "Labrador Retriever", ZipCode: "94105", ImageURL: "https://img.example/d08.jpg"},
	}
}

// ManyDogs returns n generated dogs cycling through a few breeds.
func ManyDogs(n int) []catalog.Dog {
	breeds := []string{"Beagle", "Labrador Retriever", "Pug", "Shih-Tzu"}
	zips := []string{"10001", "60614", "94105"}
	out := make([]catalog.Dog, n)
	for i := range out {
		out[i] = catalog.Dog{
			ID:      fmt.Sprintf("dog-%04d", i),
			Name:    fmt.Sprintf("Dog %d", i),
			Age:     i % 16,
			Breed:   breeds[i%len(breeds)],
			ZipCode: zips[i%len(zips)],
		}
	}
	return out
}
