package coastline

import (
	"math"

	"github.com/terrain-microservice/internal/domain"
)

// Справочный набор прибрежных точек: объединение явного списка прибрежных
// городов и кусочно-линейных аппроксимаций береговых линий по регионам.
// Плотность сэмплирования намеренно неравномерна: регионы с плотным
// покрытием запросов (Индия, США) сэмплируются с шагом ~5 км, полярные
// берега - с шагом в сотни километров. Это осознанный компромисс
// точность/объём, допустимый при грубых порогах классификации (50 км).
//
// TODO: заменить на реальный полигональный датасет береговой линии
// (Natural Earth / OSM coastline) за тем же интерфейсом CoastlineRepository.

// coastalCities - явные точки высокой ценности: гарантируют точность
// для известных прибрежных городов вне зависимости от шага сэмплирования
var coastalCities = []domain.Point{
	{Lat: 13.0827, Lon: 80.2707},  // Chennai
	{Lat: 19.0760, Lon: 72.8777},  // Mumbai
	{Lat: 9.9312, Lon: 76.2673},   // Kochi
	{Lat: 17.6868, Lon: 83.2185},  // Visakhapatnam
	{Lat: 22.5726, Lon: 88.3639},  // Kolkata
	{Lat: 15.2993, Lon: 74.1240},  // Goa
	{Lat: 8.5241, Lon: 76.9366},   // Thiruvananthapuram
	{Lat: 40.7128, Lon: -74.0060}, // New York
	{Lat: 34.0522, Lon: -118.2437}, // Los Angeles
	{Lat: 25.7617, Lon: -80.1918}, // Miami
	{Lat: 37.7749, Lon: -122.4194}, // San Francisco
	{Lat: 47.6062, Lon: -122.3321}, // Seattle
	{Lat: 42.3601, Lon: -71.0589}, // Boston
	{Lat: 29.7604, Lon: -95.3698}, // Houston
	{Lat: 38.7223, Lon: -9.1393},  // Lisbon
	{Lat: 41.3851, Lon: 2.1734},   // Barcelona
	{Lat: 51.9244, Lon: 4.4777},   // Rotterdam
	{Lat: 53.5511, Lon: 9.9937},   // Hamburg
	{Lat: 35.6762, Lon: 139.6503}, // Tokyo
	{Lat: 31.2304, Lon: 121.4737}, // Shanghai
	{Lat: 22.3193, Lon: 114.1694}, // Hong Kong
	{Lat: 1.3521, Lon: 103.8198},  // Singapore
	{Lat: -33.8688, Lon: 151.2093}, // Sydney
	{Lat: -37.8136, Lon: 144.9631}, // Melbourne
	{Lat: -31.9505, Lon: 115.8605}, // Perth
	{Lat: -33.9249, Lon: 18.4241}, // Cape Town
	{Lat: 6.5244, Lon: 3.3792},    // Lagos
	{Lat: -22.9068, Lon: -43.1729}, // Rio de Janeiro
	{Lat: -34.6037, Lon: -58.3816}, // Buenos Aires
	{Lat: -12.0464, Lon: -77.0428}, // Lima
	{Lat: 25.2048, Lon: 55.2708},  // Dubai
	{Lat: 24.8607, Lon: 67.0011},  // Karachi
	{Lat: 31.2001, Lon: 29.9187},  // Alexandria
	{Lat: 4.1755, Lon: 73.5093},   // Male
	{Lat: 6.9271, Lon: 79.8612},   // Colombo
}

// polyline - ломаная аппроксимация участка берега с шагом сэмплирования в градусах
type polyline struct {
	name string
	step float64
	pts  []domain.Point
}

var coastPolylines = []polyline{
	{
		name: "india_west",
		step: 0.05, // ~5 км
		pts: []domain.Point{
			{Lat: 23.0, Lon: 68.5},
			{Lat: 21.6, Lon: 69.6},
			{Lat: 20.9, Lon: 70.4},
			{Lat: 19.07, Lon: 72.87},
			{Lat: 15.5, Lon: 73.8},
			{Lat: 12.9, Lon: 74.8},
			{Lat: 10.0, Lon: 76.2},
			{Lat: 8.08, Lon: 77.55},
		},
	},
	{
		name: "india_east",
		step: 0.05,
		pts: []domain.Point{
			{Lat: 8.08, Lon: 77.55},
			{Lat: 9.28, Lon: 79.3},
			{Lat: 10.77, Lon: 79.85},
			{Lat: 13.08, Lon: 80.29},
			{Lat: 15.5, Lon: 80.05},
			{Lat: 17.69, Lon: 83.22},
			{Lat: 19.8, Lon: 85.85},
			{Lat: 21.65, Lon: 87.5},
			{Lat: 21.6, Lon: 88.2},
		},
	},
	{
		name: "usa_east",
		step: 0.1, // ~10 км
		pts: []domain.Point{
			{Lat: 44.8, Lon: -66.9},
			{Lat: 42.36, Lon: -70.9},
			{Lat: 41.3, Lon: -72.0},
			{Lat: 40.5, Lon: -73.9},
			{Lat: 38.9, Lon: -74.9},
			{Lat: 36.8, Lon: -75.9},
			{Lat: 33.8, Lon: -78.0},
			{Lat: 32.0, Lon: -80.9},
			{Lat: 30.4, Lon: -81.4},
			{Lat: 28.4, Lon: -80.6},
			{Lat: 25.8, Lon: -80.1},
			{Lat: 24.55, Lon: -81.8},
		},
	},
	{
		name: "usa_gulf",
		step: 0.1,
		pts: []domain.Point{
			{Lat: 25.9, Lon: -81.7},
			{Lat: 27.8, Lon: -82.6},
			{Lat: 29.2, Lon: -83.7},
			{Lat: 30.4, Lon: -87.2},
			{Lat: 29.3, Lon: -89.4},
			{Lat: 29.3, Lon: -94.7},
			{Lat: 27.8, Lon: -97.1},
			{Lat: 26.0, Lon: -97.15},
		},
	},
	{
		name: "usa_west",
		step: 0.1,
		pts: []domain.Point{
			{Lat: 48.4, Lon: -124.7},
			{Lat: 46.2, Lon: -124.0},
			{Lat: 43.3, Lon: -124.4},
			{Lat: 40.4, Lon: -124.4},
			{Lat: 37.8, Lon: -122.5},
			{Lat: 36.3, Lon: -121.9},
			{Lat: 34.4, Lon: -119.7},
			{Lat: 33.7, Lon: -118.2},
			{Lat: 32.5, Lon: -117.1},
		},
	},
	{
		name: "europe_atlantic",
		step: 0.2,
		pts: []domain.Point{
			{Lat: 43.4, Lon: -8.4},
			{Lat: 41.1, Lon: -8.7},
			{Lat: 38.7, Lon: -9.4},
			{Lat: 37.0, Lon: -9.0},
			{Lat: 36.0, Lon: -5.6},
		},
	},
	{
		name: "europe_mediterranean",
		step: 0.2,
		pts: []domain.Point{
			{Lat: 36.0, Lon: -5.6},
			{Lat: 36.7, Lon: -4.4},
			{Lat: 38.3, Lon: -0.5},
			{Lat: 39.5, Lon: -0.3},
			{Lat: 41.38, Lon: 2.19},
			{Lat: 43.3, Lon: 3.5},
			{Lat: 43.3, Lon: 5.4},
			{Lat: 44.4, Lon: 8.9},
			{Lat: 43.8, Lon: 10.3},
			{Lat: 41.7, Lon: 12.3},
			{Lat: 40.8, Lon: 14.2},
		},
	},
	{
		name: "europe_north",
		step: 0.3,
		pts: []domain.Point{
			{Lat: 46.0, Lon: -1.2},
			{Lat: 48.6, Lon: -4.6},
			{Lat: 49.7, Lon: 0.2},
			{Lat: 51.0, Lon: 2.5},
			{Lat: 52.0, Lon: 4.3},
			{Lat: 53.5, Lon: 8.1},
			{Lat: 54.4, Lon: 10.2},
			{Lat: 54.7, Lon: 20.5},
			{Lat: 59.4, Lon: 24.8},
			{Lat: 60.2, Lon: 24.9},
		},
	},
	{
		name: "uk",
		step: 0.3,
		pts: []domain.Point{
			{Lat: 50.1, Lon: -5.5},
			{Lat: 50.8, Lon: -1.1},
			{Lat: 51.1, Lon: 1.3},
			{Lat: 52.9, Lon: 1.7},
			{Lat: 55.0, Lon: -1.4},
			{Lat: 56.0, Lon: -3.0},
		},
	},
	{
		name: "east_asia",
		step: 0.3,
		pts: []domain.Point{
			{Lat: 35.6, Lon: 139.8},
			{Lat: 34.6, Lon: 135.4},
			{Lat: 33.6, Lon: 130.4},
			{Lat: 31.2, Lon: 121.8},
			{Lat: 28.0, Lon: 120.7},
			{Lat: 24.5, Lon: 118.1},
			{Lat: 22.3, Lon: 114.2},
			{Lat: 21.5, Lon: 109.0},
		},
	},
	{
		name: "southeast_asia",
		step: 0.4,
		pts: []domain.Point{
			{Lat: 20.9, Lon: 107.1},
			{Lat: 16.0, Lon: 108.3},
			{Lat: 10.8, Lon: 106.7},
			{Lat: 13.7, Lon: 100.5},
			{Lat: 6.9, Lon: 100.4},
			{Lat: 1.35, Lon: 103.82},
		},
	},
	{
		name: "australia",
		step: 0.5,
		pts: []domain.Point{
			{Lat: -27.4, Lon: 153.1},
			{Lat: -33.86, Lon: 151.2},
			{Lat: -37.5, Lon: 149.9},
			{Lat: -37.8, Lon: 144.9},
			{Lat: -34.9, Lon: 138.5},
			{Lat: -31.6, Lon: 131.1},
			{Lat: -35.0, Lon: 117.9},
			{Lat: -31.9, Lon: 115.8},
		},
	},
	{
		name: "south_america_east",
		step: 0.5,
		pts: []domain.Point{
			{Lat: -8.05, Lon: -34.9},
			{Lat: -13.0, Lon: -38.5},
			{Lat: -22.9, Lon: -43.2},
			{Lat: -24.0, Lon: -46.3},
			{Lat: -30.0, Lon: -50.2},
			{Lat: -34.9, Lon: -56.2},
			{Lat: -38.0, Lon: -57.5},
		},
	},
	{
		name: "south_america_west",
		step: 0.5,
		pts: []domain.Point{
			{Lat: 6.2, Lon: -77.4},
			{Lat: -3.7, Lon: -80.8},
			{Lat: -12.0, Lon: -77.1},
			{Lat: -23.7, Lon: -70.4},
			{Lat: -33.0, Lon: -71.6},
			{Lat: -41.5, Lon: -73.0},
		},
	},
	{
		name: "africa",
		step: 0.5,
		pts: []domain.Point{
			{Lat: 33.6, Lon: -7.6},
			{Lat: 14.7, Lon: -17.4},
			{Lat: 5.55, Lon: -0.2},
			{Lat: 6.45, Lon: 3.4},
			{Lat: -8.8, Lon: 13.2},
			{Lat: -33.9, Lon: 18.4},
			{Lat: -29.9, Lon: 31.0},
			{Lat: -15.0, Lon: 40.7},
			{Lat: -4.05, Lon: 39.7},
			{Lat: 2.0, Lon: 45.3},
			{Lat: 11.6, Lon: 43.1},
		},
	},
	{
		name: "middle_east",
		step: 0.5,
		pts: []domain.Point{
			{Lat: 29.5, Lon: 48.0},
			{Lat: 26.2, Lon: 50.6},
			{Lat: 25.3, Lon: 55.3},
			{Lat: 23.6, Lon: 58.6},
			{Lat: 25.2, Lon: 62.3},
			{Lat: 24.8, Lon: 66.9},
			{Lat: 23.0, Lon: 68.5},
		},
	},
	{
		name: "arctic",
		step: 2.5, // ~300-500 км у полюса
		pts: []domain.Point{
			{Lat: 71.0, Lon: 25.0},
			{Lat: 73.0, Lon: 40.0},
			{Lat: 76.0, Lon: 68.0},
			{Lat: 73.0, Lon: 80.0},
			{Lat: 74.0, Lon: 100.0},
			{Lat: 72.0, Lon: 130.0},
			{Lat: 70.0, Lon: 160.0},
			{Lat: 66.0, Lon: -170.0},
			{Lat: 71.0, Lon: -156.0},
			{Lat: 69.0, Lon: -133.0},
			{Lat: 68.0, Lon: -110.0},
		},
	},
	{
		name: "antarctica",
		step: 2.5,
		pts: []domain.Point{
			{Lat: -70.0, Lon: -60.0},
			{Lat: -70.5, Lon: -20.0},
			{Lat: -69.5, Lon: 20.0},
			{Lat: -67.0, Lon: 60.0},
			{Lat: -66.5, Lon: 100.0},
			{Lat: -66.0, Lon: 140.0},
			{Lat: -70.0, Lon: 170.0},
		},
	},
}

// buildReferenceSet собирает справочный набор один раз при старте процесса
func buildReferenceSet() []domain.Point {
	points := make([]domain.Point, 0, 4096)
	points = append(points, coastalCities...)
	for _, pl := range coastPolylines {
		points = append(points, samplePolyline(pl)...)
	}
	return points
}

// samplePolyline линейно интерполирует вершины ломаной с заданным шагом в градусах
func samplePolyline(pl polyline) []domain.Point {
	var out []domain.Point
	for i := 0; i < len(pl.pts)-1; i++ {
		a, b := pl.pts[i], pl.pts[i+1]
		span := math.Max(math.Abs(b.Lat-a.Lat), math.Abs(b.Lon-a.Lon))
		n := int(math.Ceil(span / pl.step))
		if n < 1 {
			n = 1
		}
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			out = append(out, domain.Point{
				Lat: a.Lat + (b.Lat-a.Lat)*t,
				Lon: a.Lon + (b.Lon-a.Lon)*t,
			})
		}
	}
	out = append(out, pl.pts[len(pl.pts)-1])
	return out
}
