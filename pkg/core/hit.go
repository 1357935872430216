package core

// HitClosest tests the ray against every shape and returns the nearest hit in [tMin, tMax]
func HitClosest(shapes []Shape, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closestHit *HitRecord
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// SceneBounds returns the union of the bounding boxes of all shapes
func SceneBounds(shapes []Shape) AABB {
	if len(shapes) == 0 {
		return AABB{}
	}
	bounds := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		bounds = bounds.Union(shape.BoundingBox())
	}
	return bounds
}
