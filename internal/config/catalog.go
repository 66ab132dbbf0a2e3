package config

// DefaultCatalog returns the built-in city kit: four buildings, four road
// tiles, two cars and two pieces of street furniture. Regions match the
// menu thumbnails of a 1280x720 window.
func DefaultCatalog() []CatalogEntry {
	road := [3]float32{0, 0.5, 0.5}
	return []CatalogEntry{
		{
			Name:   "buildingB",
			Mesh:   "obj/building_B.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 260, MaxY: 298},
			Menu:   MenuPlacement{Position: [3]float32{15, 3.5, 0}, Scale: 1},
		},
		{
			Name:   "buildingD",
			Mesh:   "obj/building_D.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 157, MaxY: 221},
			Menu:   MenuPlacement{Position: [3]float32{15, 6, 0}, Scale: 1},
		},
		{
			Name:   "roadStraight",
			Mesh:   "obj/road_straight.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 408, MaxY: 445},
			Menu:   MenuPlacement{Position: [3]float32{-3, -5, 20}, Rotation: road, Scale: 1},
		},
		{
			Name:   "policeCar",
			Mesh:   "obj/car_police.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 365, MaxY: 378},
			Menu:   MenuPlacement{Position: [3]float32{15, 0.8, 0}, Scale: 1.5},
		},
		{
			Name:   "roadCorner",
			Mesh:   "obj/road_corner.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 474, MaxY: 511},
			Menu:   MenuPlacement{Position: [3]float32{-6, -5, 20}, Rotation: road, Scale: 1},
		},
		{
			Name:   "crosswalk",
			Mesh:   "obj/road_straight_crossing.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 543, MaxY: 579},
			Menu:   MenuPlacement{Position: [3]float32{-9, -5, 20}, Rotation: road, Scale: 1},
		},
		{
			Name:   "hatchback",
			Mesh:   "obj/car_hatchback.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 335, MaxY: 344},
			Menu:   MenuPlacement{Position: [3]float32{15, 2, 0}, Scale: 1.5},
		},
		{
			Name:   "roadSplit",
			Mesh:   "obj/road_tsplit.obj",
			Region: Region{MinX: 1036, MaxX: 1123, MinY: 606, MaxY: 648},
			Menu:   MenuPlacement{Position: [3]float32{-12, -5, 20}, Rotation: road, Scale: 1},
		},
		{
			Name:   "buildingF",
			Mesh:   "obj/building_F.obj",
			Region: Region{MinX: 1145, MaxX: 1241, MinY: 237, MaxY: 298},
			Menu:   MenuPlacement{Position: [3]float32{19, 3.5, 0}, Scale: 1},
		},
		{
			Name:   "buildingH",
			Mesh:   "obj/building_H.obj",
			Region: Region{MinX: 1145, MaxX: 1241, MinY: 132, MaxY: 203},
			Menu:   MenuPlacement{Position: [3]float32{19, 6.5, 0}, Scale: 1},
		},
		{
			Name:   "trafficLight",
			Mesh:   "obj/trafficlight_C.obj",
			Region: Region{MinX: 1145, MaxX: 1241, MinY: 333, MaxY: 374},
			Menu:   MenuPlacement{Position: [3]float32{20, 1, 0}, Scale: 1.5},
		},
		{
			Name:   "streetLight",
			Mesh:   "obj/streetlight.obj",
			Region: Region{MinX: 1145, MaxX: 1241, MinY: 408, MaxY: 447},
			Menu:   MenuPlacement{Position: [3]float32{20, -1.5, 0}, Scale: 1.5},
		},
	}
}
