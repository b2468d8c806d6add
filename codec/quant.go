package codec

// quantTabOffset gives the starting offset of each residual width's
// sub-table within quantTab, mirroring SEA_QUANT_TAB_OFFSET. Index 0 is
// unused (ResidualSize starts at 1).
var quantTabOffset = [9]int{
	0,
	0,
	5,
	5 + 9,
	5 + 9 + 17,
	5 + 9 + 17 + 33,
	5 + 9 + 17 + 33 + 65,
	5 + 9 + 17 + 33 + 65 + 129,
	5 + 9 + 17 + 33 + 65 + 129 + 257,
}

// quantTab is the flat concatenation of the zig-zag lookup sub-tables for
// residual widths 1..8, transcribed from SEA_QUANT_TAB. Sub-table k has
// 2^(k+1)+1 entries laid out symmetrically about its midpoint; to quantize
// a clamped value x in [-2^k, 2^k], index with quantTabOffset[k] + 2^k + x.
var quantTab = [5 + 9 + 17 + 33 + 65 + 129 + 257 + 513]byte{
	// QUANT_TAB 1
	1, 1, // -2..-1
	0,
	0, 0,

	// QUANT_TAB 2 (k=2 special-cased: positions 2 and 6 are 1 and 0)
	3, 3, 1, 1,
	0,
	0, 0, 2, 2,

	// QUANT_TAB 3
	7, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 6,

	// QUANT_TAB 4
	15, 15, 15, 13, 13, 11, 11, 9,
	9, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 8,
	8, 10, 10, 12, 12, 14, 14, 14,

	// QUANT_TAB 5
	31, 31, 31, 29, 29, 27, 27, 25, 25, 23, 23, 21, 21, 19, 19, 17,
	17, 15, 15, 13, 13, 11, 11, 9, 9, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 8, 8, 10, 10, 12, 12, 14, 14, 16,
	16, 18, 18, 20, 20, 22, 22, 24, 24, 26, 26, 28, 28, 30, 30, 30,

	// QUANT_TAB 6
	63, 63, 63, 61, 61, 59, 59, 57, 57, 55, 55, 53, 53, 51, 51, 49,
	49, 47, 47, 45, 45, 43, 43, 41, 41, 39, 39, 37, 37, 35, 35, 33,
	33, 31, 31, 29, 29, 27, 27, 25, 25, 23, 23, 21, 21, 19, 19, 17,
	17, 15, 15, 13, 13, 11, 11, 9, 9, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 8, 8, 10, 10, 12, 12, 14, 14, 16,
	16, 18, 18, 20, 20, 22, 22, 24, 24, 26, 26, 28, 28, 30, 30, 32,
	32, 34, 34, 36, 36, 38, 38, 40, 40, 42, 42, 44, 44, 46, 46, 48,
	48, 50, 50, 52, 52, 54, 54, 56, 56, 58, 58, 60, 60, 62, 62, 62,

	// QUANT_TAB 7
	127, 127, 127, 125, 125, 123, 123, 121, 121, 119, 119, 117, 117, 115, 115, 113,
	113, 111, 111, 109, 109, 107, 107, 105, 105, 103, 103, 101, 101, 99, 99, 97,
	97, 95, 95, 93, 93, 91, 91, 89, 89, 87, 87, 85, 85, 83, 83, 81,
	81, 79, 79, 77, 77, 75, 75, 73, 73, 71, 71, 69, 69, 67, 67, 65,
	65, 63, 63, 61, 61, 59, 59, 57, 57, 55, 55, 53, 53, 51, 51, 49,
	49, 47, 47, 45, 45, 43, 43, 41, 41, 39, 39, 37, 37, 35, 35, 33,
	33, 31, 31, 29, 29, 27, 27, 25, 25, 23, 23, 21, 21, 19, 19, 17,
	17, 15, 15, 13, 13, 11, 11, 9, 9, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 8, 8, 10, 10, 12, 12, 14, 14, 16,
	16, 18, 18, 20, 20, 22, 22, 24, 24, 26, 26, 28, 28, 30, 30, 32,
	32, 34, 34, 36, 36, 38, 38, 40, 40, 42, 42, 44, 44, 46, 46, 48,
	48, 50, 50, 52, 52, 54, 54, 56, 56, 58, 58, 60, 60, 62, 62, 64,
	64, 66, 66, 68, 68, 70, 70, 72, 72, 74, 74, 76, 76, 78, 78, 80,
	80, 82, 82, 84, 84, 86, 86, 88, 88, 90, 90, 92, 92, 94, 94, 96,
	96, 98, 98, 100, 100, 102, 102, 104, 104, 106, 106, 108, 108, 110, 110, 112,
	112, 114, 114, 116, 116, 118, 118, 120, 120, 122, 122, 124, 124, 126, 126, 126,

	// QUANT_TAB 8
	255, 255, 255, 253, 253, 251, 251, 249, 249, 247, 247, 245, 245, 243, 243, 241,
	241, 239, 239, 237, 237, 235, 235, 233, 233, 231, 231, 229, 229, 227, 227, 225,
	225, 223, 223, 221, 221, 219, 219, 217, 217, 215, 215, 213, 213, 211, 211, 209,
	209, 207, 207, 205, 205, 203, 203, 201, 201, 199, 199, 197, 197, 195, 195, 193,
	193, 191, 191, 189, 189, 187, 187, 185, 185, 183, 183, 181, 181, 179, 179, 177,
	177, 175, 175, 173, 173, 171, 171, 169, 169, 167, 167, 165, 165, 163, 163, 161,
	161, 159, 159, 157, 157, 155, 155, 153, 153, 151, 151, 149, 149, 147, 147, 145,
	145, 143, 143, 141, 141, 139, 139, 137, 137, 135, 135, 133, 133, 131, 131, 129,
	129, 127, 127, 125, 125, 123, 123, 121, 121, 119, 119, 117, 117, 115, 115, 113,
	113, 111, 111, 109, 109, 107, 107, 105, 105, 103, 103, 101, 101, 99, 99, 97,
	97, 95, 95, 93, 93, 91, 91, 89, 89, 87, 87, 85, 85, 83, 83, 81,
	81, 79, 79, 77, 77, 75, 75, 73, 73, 71, 71, 69, 69, 67, 67, 65,
	65, 63, 63, 61, 61, 59, 59, 57, 57, 55, 55, 53, 53, 51, 51, 49,
	49, 47, 47, 45, 45, 43, 43, 41, 41, 39, 39, 37, 37, 35, 35, 33,
	33, 31, 31, 29, 29, 27, 27, 25, 25, 23, 23, 21, 21, 19, 19, 17,
	17, 15, 15, 13, 13, 11, 11, 9, 9, 7, 7, 5, 5, 3, 3, 1,
	0,
	0, 2, 2, 4, 4, 6, 6, 8, 8, 10, 10, 12, 12, 14, 14, 16,
	16, 18, 18, 20, 20, 22, 22, 24, 24, 26, 26, 28, 28, 30, 30, 32,
	32, 34, 34, 36, 36, 38, 38, 40, 40, 42, 42, 44, 44, 46, 46, 48,
	48, 50, 50, 52, 52, 54, 54, 56, 56, 58, 58, 60, 60, 62, 62, 64,
	64, 66, 66, 68, 68, 70, 70, 72, 72, 74, 74, 76, 76, 78, 78, 80,
	80, 82, 82, 84, 84, 86, 86, 88, 88, 90, 90, 92, 92, 94, 94, 96,
	96, 98, 98, 100, 100, 102, 102, 104, 104, 106, 106, 108, 108, 110, 110, 112,
	112, 114, 114, 116, 116, 118, 118, 120, 120, 122, 122, 124, 124, 126, 126, 128,
	128, 130, 130, 132, 132, 134, 134, 136, 136, 138, 138, 140, 140, 142, 142, 144,
	144, 146, 146, 148, 148, 150, 150, 152, 152, 154, 154, 156, 156, 158, 158, 160,
	160, 162, 162, 164, 164, 166, 166, 168, 168, 170, 170, 172, 172, 174, 174, 176,
	176, 178, 178, 180, 180, 182, 182, 184, 184, 186, 186, 188, 188, 190, 190, 192,
	192, 194, 194, 196, 196, 198, 198, 200, 200, 202, 202, 204, 204, 206, 206, 208,
	208, 210, 210, 212, 212, 214, 214, 216, 216, 218, 218, 220, 220, 222, 222, 224,
	224, 226, 226, 228, 228, 230, 230, 232, 232, 234, 234, 236, 236, 238, 238, 240,
	240, 242, 242, 244, 244, 246, 246, 248, 248, 250, 250, 252, 252, 254, 254, 254,
}

// quantize maps a clamped signed residual to its unsigned code for the given
// residual width.
func quantize(residualSize ResidualSize, clamped int32) byte {
	limit := int32(residualSize.BinaryCombinations())
	offset := limit + int32(quantTabOffset[residualSize])
	return quantTab[offset+clamped]
}
